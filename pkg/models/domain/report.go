package domain

import "time"

type Unit string

const (
	UnitDays       Unit = "days"
	UnitPercentage Unit = "percentage"
)

type SortOrder string

const (
	SortDescending SortOrder = "desc"
	SortAscending  SortOrder = "asc"
	SortNone       SortOrder = "none"
)

type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// Totals is the result of grouping records by one location attribute
type Totals struct {
	Key    string
	Groups map[string]int // group value -> days
	Order  []string       // group values in first-seen order
	Total  int
	Period TimePeriod
}

// Report represents a presented aggregation, ready for a rendering backend
type Report struct {
	Title     string
	Key       string
	Unit      Unit
	Chart     ChartKind
	Period    TimePeriod
	Series    []DataPoint
	TotalDays int
}

// TimePeriod represents a time range covered by the records
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// DataPoint is one bar or slice of the chart
type DataPoint struct {
	Label string
	Value float64 // days or percentage, depending on the report unit
	Days  int
}

// AxisLabel is the short unit label printed next to values.
func (r *Report) AxisLabel() string {
	if r.Unit == UnitPercentage {
		return "%"
	}
	return string(UnitDays)
}
