package cmd

import (
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:     "download [version]",
	Aliases: []string{"dl"},
	Short:   "Download an SDK archive without installing it",
	Args:    exactArg("version", "sdkswitcher download 1.9.57"),
	RunE:    runDownload,
	Example: `  # Download the latest release
  sdkswitcher download latest`,
}

func runDownload(cmd *cobra.Command, args []string) error {
	a := newApp(cfg)

	version, err := a.resolver.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logging.LogOutput("Downloading SDK version %s", version)

	archive, err := a.downloads.Download(cmd.Context(), version)
	if err != nil {
		return err
	}
	logging.LogOutput("Saved as %s", archive.Path)
	return nil
}
