package domain

import (
	"fmt"
	"regexp"
)

const (
	// DefaultDatePattern accepts YYYY-MM-DD with an unbounded year and a zero-padded month and day.
	DefaultDatePattern   = `^\d+-(0\d|1[0-2])-([0-2]\d|3[01])$`
	DefaultDelimiter     = ","
	DefaultDateDelimiter = "-"
	DefaultPresentToken  = "present"
	DefaultStartIndex    = 0
	DefaultEndIndex      = 1
)

// Schema describes where the two date columns live in a residence file
// and how their values are written. Every other column is a location attribute.
type Schema struct {
	StartIndex    int
	EndIndex      int
	Delimiter     string
	DateDelimiter string
	PresentToken  string
	DatePattern   *regexp.Regexp
}

func DefaultSchema() Schema {
	return Schema{
		StartIndex:    DefaultStartIndex,
		EndIndex:      DefaultEndIndex,
		Delimiter:     DefaultDelimiter,
		DateDelimiter: DefaultDateDelimiter,
		PresentToken:  DefaultPresentToken,
		DatePattern:   regexp.MustCompile(DefaultDatePattern),
	}
}

func (s Schema) Validate() error {
	switch {
	case s.StartIndex < 0 || s.EndIndex < 0:
		return &SchemaError{Reason: fmt.Sprintf("date indexes must not be negative (start %d, end %d)", s.StartIndex, s.EndIndex)}
	case s.StartIndex == s.EndIndex:
		return &SchemaError{Reason: fmt.Sprintf("start and end index must differ (both %d)", s.StartIndex)}
	case s.Delimiter == "":
		return &SchemaError{Reason: "field delimiter is empty"}
	case s.DateDelimiter == "":
		return &SchemaError{Reason: "date delimiter is empty"}
	case s.PresentToken == "":
		return &SchemaError{Reason: "present token is empty"}
	case s.DatePattern == nil:
		return &SchemaError{Reason: "date pattern is missing"}
	}
	return nil
}

// RequiredFields is the smallest header arity that holds both date columns.
func (s Schema) RequiredFields() int {
	return max(s.StartIndex, s.EndIndex) + 1
}

func (s Schema) IsDateIndex(i int) bool {
	return i == s.StartIndex || i == s.EndIndex
}

// MatchesDate reports whether v passes the date grammar or is the present token.
// The token is accepted in either date column; only the end column gives it meaning.
func (s Schema) MatchesDate(v string) bool {
	return v == s.PresentToken || s.DatePattern.MatchString(v)
}
