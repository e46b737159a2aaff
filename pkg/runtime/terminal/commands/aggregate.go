package commands

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/de-tools/residence-atlas/pkg/services/residence"
	"github.com/spf13/cobra"
)

const (
	FormatChart = "chart"
	FormatTable = "table"
	FormatJSON  = "json"
)

type AggregateCmd struct {
	globals   *Globals
	reporters map[string]Reporter
	pie       bool
	axis      string
	nosort    bool
	reverse   bool
	format    string
}

func NewAggregateCmd(globals *Globals, reporters map[string]Reporter) *cobra.Command {
	ac := &AggregateCmd{globals: globals, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "residence <file> <location> [location...]",
		Short: "Calculate the number of days you have spent in different households",
		Long: "Reads a residence file (one row per period lived somewhere, with a start and an end date)\n" +
			"and reports the days spent per value of each given location attribute, e.g. city or region.",
		Args: cobra.MinimumNArgs(2),
		RunE: ac.run,
	}

	cmd.Flags().BoolVarP(&ac.pie, "pie", "p", false, "Plot as a pie chart instead")
	cmd.Flags().StringVarP(&ac.axis, "axis", "a", "percentage", "Unit to display the y-axis in. Either 'days' or 'percentage'")
	cmd.Flags().BoolVarP(&ac.nosort, "nosort", "s", false, "Do not sort the x-axis")
	cmd.Flags().BoolVarP(&ac.reverse, "reverse", "r", false, "Reverse the x-axis. Must not be used with '--nosort'")
	cmd.Flags().StringVarP(&ac.format, "format", "f", FormatChart, "Output format: chart, table or json")

	return cmd
}

func (ac *AggregateCmd) run(cmd *cobra.Command, args []string) error {
	opts, err := residence.ParseOptions(ac.pie, ac.axis, ac.nosort, ac.reverse)
	if err != nil {
		return err
	}

	reporter, ok := ac.reporters[ac.format]
	if !ok {
		formats := make([]string, 0, len(ac.reporters))
		for f := range ac.reporters {
			formats = append(formats, f)
		}
		slices.Sort(formats)
		return fmt.Errorf("unsupported format %q. Supported formats: %s", ac.format, strings.Join(formats, ", "))
	}

	ctx := cmd.Context()
	svc, err := ac.globals.NewService(ctx)
	if err != nil {
		return err
	}

	path, keys := args[0], args[1:]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	reports, err := svc.Analyze(ctx, f, keys, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, report := range reports {
		if err := reporter.Handle(report); err != nil {
			return fmt.Errorf("failed to render report for %s: %w", report.Key, err)
		}
	}
	return nil
}
