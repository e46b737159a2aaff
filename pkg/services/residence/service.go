package residence

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/de-tools/residence-atlas/pkg/services/parser"
	"github.com/rs/zerolog"
)

// Analyzer parses a residence file and reports on it. It is implemented by Service
// and consumed by the terminal commands and the web handlers.
type Analyzer interface {
	// Labels returns the grouping keys available in the input.
	Labels(ctx context.Context, r io.Reader) ([]string, error)
	// Analyze produces one report per key, in the order the keys are given.
	Analyze(ctx context.Context, r io.Reader, keys []string, opts Options) ([]*domain.Report, error)
}

type Service struct {
	parser *parser.Parser
}

func NewService(p *parser.Parser) *Service {
	return &Service{parser: p}
}

func (s *Service) Labels(ctx context.Context, r io.Reader) ([]string, error) {
	header, _, err := s.parser.Parse(ctx, r)
	if err != nil {
		return nil, err
	}
	return header.Keys(), nil
}

// Analyze parses the input once and aggregates it for every key. The first failing key aborts.
func (s *Service) Analyze(ctx context.Context, r io.Reader, keys []string, opts Options) ([]*domain.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	_, records, err := s.parser.Parse(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	reports := make([]*domain.Report, 0, len(keys))
	for _, key := range keys {
		totals, err := Aggregate(ctx, records, key)
		if err != nil {
			return nil, err
		}

		report, err := Present(ctx, totals, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to present %s: %w", key, err)
		}
		reports = append(reports, report)
	}

	zerolog.Ctx(ctx).Debug().
		Int("records", len(records)).
		Int("reports", len(reports)).
		Msg("analysis finished")

	return reports, nil
}
