package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type LabelsCmd struct {
	globals *Globals
}

func NewLabelsCmd(globals *Globals) *cobra.Command {
	lc := &LabelsCmd{globals: globals}
	return &cobra.Command{
		Use:   "labels <file>",
		Short: "List the location labels a file can be grouped by",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.run,
	}
}

func (lc *LabelsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := lc.globals.NewService(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	labels, err := svc.Labels(ctx, f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if len(labels) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No location labels found in: %s\n", args[0])
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available location labels in %s:\n%s\n",
		args[0],
		strings.Join(labels, "\n"))

	return nil
}
