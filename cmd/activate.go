package cmd

import (
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:     "activate [version]",
	Aliases: []string{"ac"},
	Short:   "Point the SDK symlink at an installed version",
	Long: `Point the google_appengine symlink at a version. The version can be exact
(1.9.57), "latest", or a fragment matching exactly one installed version (57).`,
	Args: exactArg("version", "sdkswitcher activate 1.9.57"),
	RunE: runActivate,
	Example: `  # Activate an exact version
  sdkswitcher activate 1.9.57

  # Activate the only installed version containing "57"
  sdkswitcher ac 57`,
}

func runActivate(cmd *cobra.Command, args []string) error {
	a := newApp(cfg)

	version, err := a.resolver.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logging.LogDebug("🔗 Activating SDK version %s", version)

	return a.activate(version)
}
