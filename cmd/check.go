package cmd

import (
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show the latest published SDK version",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	latest, err := newApp(cfg).checker.LatestVersion(cmd.Context())
	if err != nil {
		return err
	}

	if GetJsonOutput() {
		return OutputJSON(CheckOutput{Latest: latest})
	}
	logging.LogOutput("Latest version: %s", latest)
	return nil
}
