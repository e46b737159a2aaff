package residence

import (
	"context"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Aggregate sums record durations per distinct value of the key attribute.
// Negative durations are added as they are; the aggregator never divides.
func Aggregate(ctx context.Context, records []domain.Record, key string) (domain.Totals, error) {
	totals := domain.Totals{
		Key:    key,
		Groups: make(map[string]int),
	}

	for i, record := range records {
		value, ok := record.Field(key)
		if !ok {
			return domain.Totals{}, &domain.UnknownFieldError{Key: key, Available: record.Header().Keys()}
		}

		if _, seen := totals.Groups[value]; !seen {
			totals.Order = append(totals.Order, value)
		}
		totals.Groups[value] += record.Duration
		totals.Total += record.Duration

		if i == 0 || record.Start.Before(totals.Period.Start) {
			totals.Period.Start = record.Start
		}
		if i == 0 || record.End.After(totals.Period.End) {
			totals.Period.End = record.End
		}
	}
	totals.Period.Duration = domain.DaysBetween(totals.Period.Start, totals.Period.End)

	zerolog.Ctx(ctx).Debug().
		Str("key", key).
		Int("groups", len(totals.Groups)).
		Int("total_days", totals.Total).
		Msg("aggregated")

	return totals, nil
}
