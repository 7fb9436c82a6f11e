package cmd

import (
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:     "link [directory]",
	Aliases: []string{"ln"},
	Short:   "Change the directory holding the SDK symlink",
	Long: `Change the directory in which the google_appengine symlink is created and
save it in the preferences. An active version is linked at the new location
before the old link is removed.`,
	Args: exactArg("directory", "sdkswitcher link ~/bin"),
	RunE: runLink,
}

func runLink(cmd *cobra.Command, args []string) error {
	a := newApp(cfg)

	cfg.SetLink(args[0])
	moved, err := a.activator.Relocate(cfg.SDKLink())
	if err != nil {
		return err
	}

	if moved {
		active, err := a.activator.Current()
		if err != nil {
			return err
		}
		logging.LogOutput("SDK version %s is now active.", active)
	}

	filename, err := cfg.Save()
	if err != nil {
		return err
	}
	logging.LogDebug("Preferences saved to %s", filename)
	logging.LogOutput("SDK symlink is %s", cfg.SDKLink())
	return nil
}
