package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/residence-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	globals *Globals
}

func NewProfilesCmd(globals *Globals) *cobra.Command {
	pc := &ProfilesCmd{globals: globals}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the named schema profiles",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path := pc.globals.Source.ProfilesFile
	if path == "" {
		path = config.DefaultProfilesPath()
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		return err
	}

	profiles, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in: %s\n", path)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profiles in %s:\n%s\n", path, strings.Join(profiles, "\n"))
	return nil
}
