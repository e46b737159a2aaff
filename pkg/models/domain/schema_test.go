package domain

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_MatchesDate(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		value string
		want  bool
	}{
		{"2020-01-01", true},
		{"12345-12-31", true},
		{"2021-02-31", true}, // grammar only, the calendar check happens on construction
		{"2020-00-15", true},
		{"present", true},
		{"2020-13-01", false},
		{"2020-1-01", false},
		{"2020-01-32", false},
		{"20-01-01x", false},
		{"Present", false},
		{"", false},
		{" 2020-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.MatchesDate(tt.value))
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Schema)
		valid  bool
	}{
		{"default", func(*Schema) {}, true},
		{"same indexes", func(s *Schema) { s.EndIndex = s.StartIndex }, false},
		{"negative index", func(s *Schema) { s.StartIndex = -1 }, false},
		{"empty delimiter", func(s *Schema) { s.Delimiter = "" }, false},
		{"empty date delimiter", func(s *Schema) { s.DateDelimiter = "" }, false},
		{"empty token", func(s *Schema) { s.PresentToken = "" }, false},
		{"missing pattern", func(s *Schema) { s.DatePattern = nil }, false},
		{"dates at the end", func(s *Schema) { s.StartIndex, s.EndIndex = 4, 5 }, true},
		{"custom pattern", func(s *Schema) { s.DatePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			schema := DefaultSchema()
			tt.modify(&schema)

			// When
			err := schema.Validate()

			// Then
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var schemaErr *SchemaError
			require.Error(t, err)
			assert.True(t, errors.As(err, &schemaErr))
		})
	}
}

func TestSchema_RequiredFields(t *testing.T) {
	schema := DefaultSchema()
	schema.StartIndex, schema.EndIndex = 5, 4

	assert.Equal(t, 6, schema.RequiredFields())
	assert.True(t, schema.IsDateIndex(4))
	assert.True(t, schema.IsDateIndex(5))
	assert.False(t, schema.IsDateIndex(0))
}
