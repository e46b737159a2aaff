package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datesLastSchema() domain.Schema {
	s := domain.DefaultSchema()
	s.StartIndex, s.EndIndex = 4, 5
	return s
}

func newTestParser(t *testing.T, schema domain.Schema, now time.Time) *Parser {
	t.Helper()
	p, err := NewParser(schema, WithClock(&fixedClock{now: now}))
	require.NoError(t, err)
	return p
}

const example = `country,region,city,address,start,end
US,CA,LA,Main St,2020-01-01,2020-01-11
US,NY,NYC,2nd Ave,2020-01-11,present
`

func TestParse_Example_BuildsRecords(t *testing.T) {
	// Given
	p := newTestParser(t, datesLastSchema(), time.Date(2020, 2, 10, 18, 30, 0, 0, time.Local))

	// When
	header, records, err := p.Parse(context.Background(), strings.NewReader(example))

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "region", "city", "address", "start", "end"}, header.Names())
	require.Len(t, records, 2)

	assert.Equal(t, 10, records[0].Duration)
	assert.Equal(t, date(2020, 1, 1), records[0].Start)
	assert.Equal(t, date(2020, 1, 11), records[0].End)
	assert.Equal(t, 2, records[0].Line)

	assert.Equal(t, 30, records[1].Duration)
	assert.Equal(t, date(2020, 2, 10), records[1].End)
	city, _ := records[1].Field("city")
	assert.Equal(t, "NYC", city)
	assert.Equal(t, 3, records[1].Line)
}

func TestParse_PresentIsFrozenAtParseTime(t *testing.T) {
	// Given
	clock := &fixedClock{now: date(2020, 2, 10)}
	p, err := NewParser(datesLastSchema(), WithClock(clock))
	require.NoError(t, err)

	// When
	_, records, err := p.Parse(context.Background(), strings.NewReader(example))
	require.NoError(t, err)
	clock.now = date(2030, 1, 1)

	// Then
	assert.Equal(t, date(2020, 2, 10), records[1].End)
	assert.Equal(t, 30, records[1].Duration)
}

func TestParse_FieldCountMismatch_AbortsWithoutRecords(t *testing.T) {
	// Given
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))
	input := "country,region,city,address,start,end\nUS,CA,LA,2020-01-01,2020-01-11\n"

	// When
	header, records, err := p.Parse(context.Background(), strings.NewReader(input))

	// Then
	var countErr *domain.FieldCountError
	require.True(t, errors.As(err, &countErr), "got %v", err)
	assert.Equal(t, domain.FieldCountError{Line: 2, Expected: 6, Actual: 5}, *countErr)
	assert.Nil(t, header)
	assert.Nil(t, records)
}

func TestParse_LaterMalformedRow_DiscardsEarlierRecords(t *testing.T) {
	// Given
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))
	input := example + "US,TX,Austin,Elm St,2020-13-01,present\n"

	// When
	_, records, err := p.Parse(context.Background(), strings.NewReader(input))

	// Then
	var formatErr *domain.DateFormatError
	require.True(t, errors.As(err, &formatErr), "got %v", err)
	assert.Equal(t, 4, formatErr.Line)
	assert.Equal(t, "2020-13-01", formatErr.Value)
	assert.Nil(t, records)
}

func TestParse_DateErrors(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		formatErr  bool
		wrongValue string
	}{
		{"month out of range", "2020-13-01,2020-12-01,a", true, "2020-13-01"},
		{"end not a date", "2020-01-01,tomorrow,a", true, "tomorrow"},
		{"token is case sensitive", "2020-01-01,Present,a", true, "Present"},
		{"impossible calendar date", "2021-02-31,present,a", false, "2021-02-31"},
		{"month zero", "2020-00-10,present,a", false, "2020-00-10"},
		{"day zero", "2020-01-00,present,a", false, "2020-01-00"},
		{"year zero", "0-01-01,present,a", false, "0-01-01"},
		{"year too large", "10000-01-01,present,a", false, "10000-01-01"},
		{"year overflows", "99999999999999999999-01-01,present,a", false, "99999999999999999999-01-01"},
		{"present as start", "present,2020-01-01,a", false, "present"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			p := newTestParser(t, domain.DefaultSchema(), date(2020, 2, 10))
			input := "start,end,city\n" + tt.row + "\n"

			// When
			_, records, err := p.Parse(context.Background(), strings.NewReader(input))

			// Then
			require.Error(t, err)
			assert.Nil(t, records)
			if tt.formatErr {
				var formatErr *domain.DateFormatError
				require.True(t, errors.As(err, &formatErr), "got %v", err)
				assert.Equal(t, tt.wrongValue, formatErr.Value)
				return
			}
			var valueErr *domain.DateValueError
			require.True(t, errors.As(err, &valueErr), "got %v", err)
			assert.Equal(t, tt.wrongValue, valueErr.Value)
			assert.Equal(t, 2, valueErr.Line)
		})
	}
}

func TestParse_LeapDayIsAccepted(t *testing.T) {
	p := newTestParser(t, domain.DefaultSchema(), date(2020, 2, 10))

	_, records, err := p.Parse(context.Background(), strings.NewReader("start,end,city\n2020-02-29,2020-03-01,x\n"))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Duration)
}

func TestParse_BlankLineEndsInput(t *testing.T) {
	// Given
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))
	input := "country,region,city,address,start,end\n" +
		"US,CA,LA,Main St,2020-01-01,2020-01-11\n" +
		"\n" +
		"US,NY,NYC,2nd Ave,2020-01-11,present\n" +
		"this row is garbage\n"

	// When
	_, records, err := p.Parse(context.Background(), strings.NewReader(input))

	// Then
	require.NoError(t, err)
	require.Len(t, records, 1)
	region, _ := records[0].Field("region")
	assert.Equal(t, "CA", region)
}

func TestParse_EmptyAndHeaderOnly(t *testing.T) {
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))

	t.Run("empty input", func(t *testing.T) {
		header, records, err := p.Parse(context.Background(), strings.NewReader(""))
		require.NoError(t, err)
		assert.Nil(t, header)
		assert.Empty(t, records)
	})

	for _, input := range []string{"\n", "\r\n"} {
		t.Run(fmt.Sprintf("only a line terminator %q", input), func(t *testing.T) {
			header, records, err := p.Parse(context.Background(), strings.NewReader(input))
			require.NoError(t, err)
			assert.Nil(t, header)
			assert.Empty(t, records)
		})
	}

	t.Run("header only", func(t *testing.T) {
		header, records, err := p.Parse(context.Background(), strings.NewReader("country,region,city,address,start,end\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"country", "region", "city", "address"}, header.Keys())
		assert.Empty(t, records)
	})

	t.Run("header shorter than the schema", func(t *testing.T) {
		_, _, err := p.Parse(context.Background(), strings.NewReader("country,region\n"))
		var headerErr *domain.HeaderError
		assert.True(t, errors.As(err, &headerErr))
	})
}

func TestParse_TrimsWhitespaceAndLineEndings(t *testing.T) {
	// Given
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))
	input := " country , region ,city,address, start ,end\r\n" +
		"US ,  CA\t,LA,Main St, 2020-01-01 ,2020-01-11 \r\n" +
		"US,NY,NYC,2nd Ave,2020-01-11,present"

	// When
	header, records, err := p.Parse(context.Background(), strings.NewReader(input))

	// Then
	require.NoError(t, err)
	assert.Equal(t, "country", header.Names()[0])
	require.Len(t, records, 2)
	region, ok := records[0].Field("region")
	assert.True(t, ok)
	assert.Equal(t, "CA", region)
	assert.Equal(t, 30, records[1].Duration, "last line without a newline is still a row")
}

func TestParse_CustomSchema(t *testing.T) {
	// Given
	schema := domain.DefaultSchema()
	schema.Delimiter = ";"
	schema.StartIndex, schema.EndIndex = 2, 0
	schema.PresentToken = "now"
	p := newTestParser(t, schema, date(2021, 1, 1))
	input := "end;city;start\nnow;Oslo;2020-12-01\n2020-12-01;Bergen;2020-06-01\n"

	// When
	header, records, err := p.Parse(context.Background(), strings.NewReader(input))

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"city"}, header.Keys())
	require.Len(t, records, 2)
	assert.Equal(t, 31, records[0].Duration)
	assert.Equal(t, 183, records[1].Duration)
}

func TestParse_ReversedDatesYieldNegativeDuration(t *testing.T) {
	p := newTestParser(t, domain.DefaultSchema(), date(2020, 2, 10))

	_, records, err := p.Parse(context.Background(), strings.NewReader("start,end,city\n2020-01-11,2020-01-01,x\n"))

	require.NoError(t, err)
	assert.Equal(t, -10, records[0].Duration)
}

func TestParse_RecordCountMatchesRowsBeforeBlankLine(t *testing.T) {
	p := newTestParser(t, domain.DefaultSchema(), date(2020, 2, 10))

	for rows := 0; rows < 5; rows++ {
		var b strings.Builder
		b.WriteString("start,end,city\n")
		for i := 0; i < rows; i++ {
			b.WriteString("2020-01-01,2020-01-02,x\n")
		}
		b.WriteString("\n2020-01-01,2020-01-02,ignored\n")

		_, records, err := p.Parse(context.Background(), strings.NewReader(b.String()))
		require.NoError(t, err)
		assert.Len(t, records, rows)
	}
}

func TestNewParser_InvalidSchema_ReturnsError(t *testing.T) {
	schema := domain.DefaultSchema()
	schema.EndIndex = schema.StartIndex

	_, err := NewParser(schema)

	var schemaErr *domain.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestParse_FromFile(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "homes.csv")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o644))
	p := newTestParser(t, datesLastSchema(), date(2020, 2, 10))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	// When
	_, records, err := p.Parse(context.Background(), f)

	// Then
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
