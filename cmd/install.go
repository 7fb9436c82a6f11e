package cmd

import (
	"os"

	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Download, extract and activate an SDK version",
	Long: `Install an SDK version. A version that is not in the cache yet is downloaded
and extracted first; the version is then activated.`,
	Args: exactArg("version", "sdkswitcher install latest"),
	RunE: runInstall,
	Example: `  # Install the latest release
  sdkswitcher install latest

  # Install a specific release
  sdkswitcher install 1.9.57`,
}

func runInstall(cmd *cobra.Command, args []string) error {
	a := newApp(cfg)

	version, err := a.resolver.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	versionDir, err := a.downloads.VersionDir(version)
	if err != nil {
		return err
	}

	installed, err := a.registry.IsInstalled(version)
	if err != nil {
		return err
	}

	logging.LogOutput("Installing SDK version %s", version)

	if !installed {
		logging.LogOutput("Downloading...")
		if _, err := a.downloads.DownloadAndExtract(cmd.Context(), version, cfg.General.KeepDownloads); err != nil {
			// Cleanup on failure
			if rmErr := os.RemoveAll(versionDir); rmErr != nil {
				logging.LogDebug("⚠️ Failed to clean up %s: %v", versionDir, rmErr)
			}
			return err
		}
		logging.LogOutput("Extracted SDK version %s", version)
	} else {
		logging.LogDebug("SDK version %s already installed", version)
	}

	return a.activate(version)
}
