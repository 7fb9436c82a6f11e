package cmd

import (
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [version]",
	Aliases: []string{"rm"},
	Short:   "Delete an installed SDK version",
	Args:    exactArg("version", "sdkswitcher remove 1.9.57"),
	RunE:    runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	a := newApp(cfg)

	version, err := a.resolver.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	active, err := a.activator.Current()
	if err != nil {
		logging.LogDebug("Could not read active version: %v", err)
	}

	logging.LogOutput("Removing SDK version %s", version)
	dir, err := a.registry.Remove(version)
	if err != nil {
		return err
	}
	logging.LogOutput("Removed %s", dir)

	if active == version {
		logging.LogWarn("⚠️ SDK version %s was active, %s now points to a missing directory", version, a.activator.Link())
	}
	return nil
}
