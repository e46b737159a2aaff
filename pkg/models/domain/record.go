package domain

import (
	"slices"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Header is the ordered list of column names read from the first line of a file.
// It is shared read-only by every Record built from that file.
type Header struct {
	names  []string
	index  map[string]int
	schema Schema
}

// NewHeader binds column names to the schema once, so records never search the names again.
func NewHeader(names []string, schema Schema) (*Header, error) {
	if len(names) < schema.RequiredFields() {
		return nil, &HeaderError{Fields: len(names), Required: schema.RequiredFields()}
	}

	h := &Header{
		names:  slices.Clone(names),
		index:  make(map[string]int, len(names)),
		schema: schema,
	}
	for i, name := range names {
		if schema.IsDateIndex(i) {
			continue
		}
		h.index[name] = i
	}
	return h, nil
}

func (h *Header) Len() int {
	return len(h.names)
}

func (h *Header) Names() []string {
	return slices.Clone(h.names)
}

func (h *Header) StartName() string {
	return h.names[h.schema.StartIndex]
}

func (h *Header) EndName() string {
	return h.names[h.schema.EndIndex]
}

// Keys returns the names usable as grouping keys: every column except the two dates.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	keys := make([]string, 0, len(h.index))
	for i, name := range h.names {
		if h.schema.IsDateIndex(i) || slices.Contains(keys, name) {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

func (h *Header) lookup(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

type Field struct {
	Name  string
	Value string
}

// Record is one residence interval. Its duration is fixed when the record is built.
type Record struct {
	Line     int
	Start    time.Time
	End      time.Time
	Duration int // in days, negative when End precedes Start

	header *Header
	values []string
}

func NewRecord(header *Header, line int, values []string, start, end time.Time) Record {
	return Record{
		Line:     line,
		Start:    start,
		End:      end,
		Duration: DaysBetween(start, end),
		header:   header,
		values:   slices.Clone(values),
	}
}

func (r Record) Header() *Header {
	return r.header
}

// Field returns the raw value of a location attribute. Date columns are not fields.
func (r Record) Field(name string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.lookup(name)
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// Fields returns the location attributes in header order.
func (r Record) Fields() []Field {
	if r.header == nil {
		return nil
	}
	fields := make([]Field, 0, len(r.values))
	for i, v := range r.values {
		if r.header.schema.IsDateIndex(i) {
			continue
		}
		fields = append(fields, Field{Name: r.header.names[i], Value: v})
	}
	return fields
}

// DaysBetween counts whole days from start to end. Both are expected at midnight UTC.
func DaysBetween(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / secondsPerDay)
}
