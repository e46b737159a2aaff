package commands

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/de-tools/residence-atlas/pkg/services/config"
	"github.com/de-tools/residence-atlas/pkg/services/parser"
	"github.com/de-tools/residence-atlas/pkg/services/residence"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Reporter renders a single report
type Reporter interface {
	Handle(report *domain.Report) error
}

// Globals holds the state shared by every command: schema selection, verbosity and the clock.
type Globals struct {
	Source  config.Source
	Verbose bool
	Clock   parser.Clock
	ErrOut  io.Writer
}

// Bind registers the persistent flags on the root command.
func (g *Globals) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.Source.SchemaFile, "schema", "", "Path to a schema file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&g.Source.ProfilesFile, "profiles", "",
		"Path to the schema profiles file (default is $HOME/"+config.DefaultProfilesFile+")")
	cmd.PersistentFlags().StringVar(&g.Source.Profile, "profile", "", "Named schema profile to use")
	cmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Increase output verbosity")
}

// Prepare attaches a logger to the command context.
func (g *Globals) Prepare(cmd *cobra.Command, _ []string) error {
	out := g.ErrOut
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if g.Verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

// NewService resolves the schema and builds the analysis service.
func (g *Globals) NewService(ctx context.Context) (*residence.Service, error) {
	schema, err := config.Resolve(ctx, g.Source)
	if err != nil {
		return nil, err
	}

	var opts []parser.Option
	if g.Clock != nil {
		opts = append(opts, parser.WithClock(g.Clock))
	}

	p, err := parser.NewParser(schema, opts...)
	if err != nil {
		return nil, err
	}
	return residence.NewService(p), nil
}
