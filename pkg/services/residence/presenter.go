package residence

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// Options selects how totals are presented.
type Options struct {
	Unit  domain.Unit
	Order domain.SortOrder
	Chart domain.ChartKind
}

func DefaultOptions() Options {
	return Options{
		Unit:  domain.UnitPercentage,
		Order: domain.SortDescending,
		Chart: domain.ChartBar,
	}
}

// ParseOptions maps the command line flags onto Options, rejecting flag combinations
// that cannot be honoured before any input is read.
func ParseOptions(pie bool, axis string, nosort, reverse bool) (Options, error) {
	if reverse && nosort {
		return Options{}, &domain.UsageConflictError{First: "--reverse", Second: "--nosort"}
	}

	unit, err := ParseUnit(axis)
	if err != nil {
		return Options{}, err
	}

	opts := Options{Unit: unit, Order: domain.SortDescending, Chart: domain.ChartBar}
	switch {
	case nosort:
		opts.Order = domain.SortNone
	case reverse:
		opts.Order = domain.SortAscending
	}
	if pie {
		opts.Chart = domain.ChartPie
	}

	return opts, opts.Validate()
}

func (o Options) Validate() error {
	if o.Chart == domain.ChartPie && o.Unit == domain.UnitDays {
		return &domain.UsageConflictError{First: "--pie", Second: "--axis days"}
	}
	return nil
}

func ParseUnit(s string) (domain.Unit, error) {
	switch domain.Unit(s) {
	case "", domain.UnitPercentage:
		return domain.UnitPercentage, nil
	case domain.UnitDays:
		return domain.UnitDays, nil
	}
	return "", fmt.Errorf("invalid axis %q, expected %q or %q", s, domain.UnitDays, domain.UnitPercentage)
}

func ParseOrder(s string) (domain.SortOrder, error) {
	switch domain.SortOrder(s) {
	case "", domain.SortDescending:
		return domain.SortDescending, nil
	case domain.SortAscending, domain.SortNone:
		return domain.SortOrder(s), nil
	}
	return "", fmt.Errorf("invalid sort order %q, expected %q, %q or %q", s,
		domain.SortDescending, domain.SortAscending, domain.SortNone)
}

func ParseChart(s string) (domain.ChartKind, error) {
	switch domain.ChartKind(s) {
	case "", domain.ChartBar:
		return domain.ChartBar, nil
	case domain.ChartPie:
		return domain.ChartPie, nil
	}
	return "", fmt.Errorf("invalid chart %q, expected %q or %q", s, domain.ChartBar, domain.ChartPie)
}

// Present converts totals into the unit requested and orders the groups.
// Percentages of a zero grand total fail with domain.ErrZeroTotal.
func Present(ctx context.Context, totals domain.Totals, opts Options) (*domain.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		Key:       totals.Key,
		Unit:      opts.Unit,
		Chart:     opts.Chart,
		Period:    totals.Period,
		TotalDays: totals.Total,
	}

	var labels []string
	switch opts.Unit {
	case domain.UnitPercentage:
		if totals.Total == 0 {
			return nil, domain.ErrZeroTotal
		}
		shares := make(map[string]float64, len(totals.Groups))
		for label, days := range totals.Groups {
			shares[label] = float64(days) / float64(totals.Total) * 100
		}
		labels = orderLabels(totals.Order, shares, opts.Order)
		report.Title = fmt.Sprintf("Percentage of days lived in each %s", totals.Key)
		for _, label := range labels {
			report.Series = append(report.Series, domain.DataPoint{
				Label: label,
				Value: shares[label],
				Days:  totals.Groups[label],
			})
		}
	case domain.UnitDays:
		labels = orderLabels(totals.Order, totals.Groups, opts.Order)
		report.Title = fmt.Sprintf("Number of days lived in each %s", totals.Key)
		for _, label := range labels {
			days := totals.Groups[label]
			report.Series = append(report.Series, domain.DataPoint{
				Label: label,
				Value: float64(days),
				Days:  days,
			})
		}
	default:
		return nil, fmt.Errorf("invalid axis %q", opts.Unit)
	}

	zerolog.Ctx(ctx).Debug().
		Str("key", totals.Key).
		Strs("order", labels).
		Msg("presented")

	return report, nil
}

// orderLabels sorts the labels by their value. Ties keep their first-seen order.
func orderLabels[V constraints.Integer | constraints.Float](labels []string, values map[string]V, order domain.SortOrder) []string {
	sorted := slices.Clone(labels)
	switch order {
	case domain.SortAscending:
		slices.SortStableFunc(sorted, func(a, b string) int {
			return cmp.Compare(values[a], values[b])
		})
	case domain.SortDescending:
		slices.SortStableFunc(sorted, func(a, b string) int {
			return cmp.Compare(values[b], values[a])
		})
	}
	return sorted
}
