package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroTotal is returned when percentages are requested but the grand total is zero.
var ErrZeroTotal = errors.New("grand total is zero, cannot compute percentages")

type FieldCountError struct {
	Line     int
	Expected int
	Actual   int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("line %d: number of fields is %d, should be %d", e.Line, e.Actual, e.Expected)
}

type DateFormatError struct {
	Line  int
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid date format %q", e.Line, e.Value)
}

// DateValueError reports a value that passed the date grammar but is not a calendar date.
type DateValueError struct {
	Line  int
	Value string
	Err   error
}

func (e *DateValueError) Error() string {
	return fmt.Sprintf("line %d: invalid date %q: %v", e.Line, e.Value, e.Err)
}

func (e *DateValueError) Unwrap() error {
	return e.Err
}

type HeaderError struct {
	Fields   int
	Required int
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header has %d fields, the schema needs at least %d", e.Fields, e.Required)
}

type UnknownFieldError struct {
	Key       string
	Available []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("location %q is not specified as a label, available location labels: [%s]",
		e.Key, strings.Join(e.Available, ", "))
}

// UsageConflictError reports two options that must not be used together.
type UsageConflictError struct {
	First  string
	Second string
}

func (e *UsageConflictError) Error() string {
	return fmt.Sprintf("argument %s must not be used with %s", e.First, e.Second)
}

type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid schema: " + e.Reason
}
