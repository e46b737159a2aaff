package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
)

const (
	minYear = 1
	maxYear = 9999
)

var errNotCalendarDate = errors.New("not a calendar date")

func (p *Parser) build(header *domain.Header, line int, values []string, now time.Time) (domain.Record, error) {
	raw := values[p.schema.StartIndex]
	start, err := p.parseDate(raw)
	if err != nil {
		return domain.Record{}, &domain.DateValueError{Line: line, Value: raw, Err: err}
	}

	end := now
	if raw = values[p.schema.EndIndex]; raw != p.schema.PresentToken {
		end, err = p.parseDate(raw)
		if err != nil {
			return domain.Record{}, &domain.DateValueError{Line: line, Value: raw, Err: err}
		}
	}

	return domain.NewRecord(header, line, values, start, end), nil
}

// parseDate splits a year-month-day value on the date delimiter. time.Date would
// silently normalize 2021-02-31 into March, so the components are checked after construction.
func (p *Parser) parseDate(v string) (time.Time, error) {
	parts := strings.Split(v, p.schema.DateDelimiter)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected year, month and day, got %d components", len(parts))
	}

	var ymd [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, err
		}
		ymd[i] = n
	}

	year, month, day := ymd[0], ymd[1], ymd[2]
	if year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("year %d out of range [%d, %d]", year, minYear, maxYear)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, errNotCalendarDate
	}
	return t, nil
}
