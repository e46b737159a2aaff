package residence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/de-tools/residence-atlas/pkg/services/parser"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

const example = `country,region,city,address,start,end
US,CA,LA,Main St,2020-01-01,2020-01-11
US,NY,NYC,2nd Ave,2020-01-11,present
`

func testParser(t *testing.T) *parser.Parser {
	t.Helper()
	schema := domain.DefaultSchema()
	schema.StartIndex, schema.EndIndex = 4, 5
	p, err := parser.NewParser(schema, parser.WithClock(fixedClock{now: time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC)}))
	require.NoError(t, err)
	return p
}

func parseRecords(t *testing.T, input string) []domain.Record {
	t.Helper()
	_, records, err := testParser(t).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	return records
}
