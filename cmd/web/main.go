package main

import (
	"fmt"
	"os"

	"github.com/de-tools/residence-atlas/pkg/server"
	"github.com/de-tools/residence-atlas/pkg/services/config"
	"github.com/de-tools/residence-atlas/pkg/services/parser"
	"github.com/de-tools/residence-atlas/pkg/services/residence"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr    string
	source  config.Source
	verbose bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for the residence aggregator",
		RunE:         runServer,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "Address to listen on")
	rootCmd.Flags().StringVar(&source.SchemaFile, "schema", "", "Path to a schema file (yaml, json or toml)")
	rootCmd.Flags().StringVar(&source.ProfilesFile, "profiles", "", "Path to the schema profiles file")
	rootCmd.Flags().StringVar(&source.Profile, "profile", "", "Named schema profile to use")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	schema, err := config.Resolve(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to resolve schema: %w", err)
	}

	p, err := parser.NewParser(schema)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	logger.Info().
		Int("start_index", schema.StartIndex).
		Int("end_index", schema.EndIndex).
		Str("delimiter", schema.Delimiter).
		Msg("schema loaded")

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Analyzer: residence.NewService(p),
			Logger:   logger,
		},
	})

	return api.Start()
}
