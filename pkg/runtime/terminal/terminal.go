package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/residence-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/residence-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/residence-atlas/pkg/services/parser"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	globals *commands.Globals
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
	Clock     parser.Clock
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = parser.RealClock{}
	}

	cli := &CLI{
		globals: &commands.Globals{
			Clock:  opts.Clock,
			ErrOut: opts.ErrOutput,
		},
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := commands.NewAggregateCmd(cli.globals, map[string]commands.Reporter{
		commands.FormatChart: NewReporter(out),
		commands.FormatTable: export.NewReporter(out),
		commands.FormatJSON:  export.NewJSONReporter(out),
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = cli.globals.Prepare
	cmd.SetOut(out)
	cli.globals.Bind(cmd)

	cmd.AddCommand(commands.NewLabelsCmd(cli.globals))
	cmd.AddCommand(commands.NewProfilesCmd(cli.globals))

	return cmd
}
