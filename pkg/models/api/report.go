package api

import "time"

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Days  int     `json:"days"`
}

type Report struct {
	Title     string      `json:"title"`
	Key       string      `json:"key"`
	Unit      string      `json:"unit"`
	Chart     string      `json:"chart"`
	Period    TimePeriod  `json:"period"`
	Series    []DataPoint `json:"series"`
	TotalDays int         `json:"total_days"`
}

type Labels struct {
	Labels []string `json:"labels"`
}

type Error struct {
	Message   string   `json:"error"`
	Available []string `json:"available,omitempty"`
}
