package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Parser turns a delimited residence file into records. The first error aborts the
// whole file: a failed parse never returns a partial record list.
type Parser struct {
	schema domain.Schema
	clock  Clock
}

type Option func(*Parser)

func WithClock(clock Clock) Option {
	return func(p *Parser) {
		p.clock = clock
	}
}

func NewParser(schema domain.Schema, opts ...Option) (*Parser, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{schema: schema, clock: RealClock{}}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Parser) Schema() domain.Schema {
	return p.schema
}

// Parse reads the header and every data row up to the first blank line.
// An empty input yields a nil header and no records.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*domain.Header, []domain.Record, error) {
	logger := zerolog.Ctx(ctx)
	br := bufio.NewReader(r)

	line, eof, err := readLine(br)
	if err != nil {
		return nil, nil, err
	}
	// a file holding only a line terminator is as empty as a file holding nothing
	if line == "" {
		logger.Debug().Msg("empty input, no records")
		return nil, nil, nil
	}

	labels := p.split(line)
	logger.Debug().Strs("labels", labels).Msg("header")

	header, err := domain.NewHeader(labels, p.schema)
	if err != nil {
		return nil, nil, err
	}

	// The present token is resolved once, so every row of this parse shares the same "today".
	now := today(p.clock)

	var records []domain.Record
	lineNo := 1
	for !eof {
		line, eof, err = readLine(br)
		if err != nil {
			return nil, nil, err
		}
		// a blank line ends the input, anything after it is ignored
		if line == "" {
			break
		}
		lineNo++

		values := p.split(line)
		logger.Debug().Int("line", lineNo).Strs("data", values).Msg("row")

		if len(values) != header.Len() {
			return nil, nil, &domain.FieldCountError{Line: lineNo, Expected: header.Len(), Actual: len(values)}
		}
		for _, i := range []int{p.schema.StartIndex, p.schema.EndIndex} {
			if !p.schema.MatchesDate(values[i]) {
				return nil, nil, &domain.DateFormatError{Line: lineNo, Value: values[i]}
			}
		}

		record, err := p.build(header, lineNo, values, now)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}

	logger.Debug().Int("records", len(records)).Msg("parsed")
	return header, records, nil
}

func (p *Parser) split(line string) []string {
	fields := strings.Split(line, p.schema.Delimiter)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// readLine returns the next line without its terminator and whether the input is exhausted.
func readLine(br *bufio.Reader) (string, bool, error) {
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), err != nil, nil
}
