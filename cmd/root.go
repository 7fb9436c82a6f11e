package cmd

import (
	"sdkswitcher/config"
	"sdkswitcher/logging"

	"github.com/spf13/cobra"
)

// Global config variable, loaded once per invocation
var cfg *config.Config

// Global flags
var (
	configFile string
	verbose    bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "sdkswitcher",
	Short: "sdkswitcher - Google App Engine SDK Version Manager",
	Long: `sdkswitcher downloads Google App Engine SDK releases, keeps them in a local
cache and points a google_appengine symlink at the active version.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration with optional config file override
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}

		// Ensure required directories exist
		if err := config.EnsureDirectoriesExist(cfg); err != nil {
			return err
		}

		level := cfg.General.LogLevel
		if verbose {
			level = "DEBUG"
		}
		return logging.InitLogger(cfg.General.LogPath, level, jsonLogs)
	},
	// Without a subcommand, show the summary followed by the help text
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runSummary(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	},
}

func init() {
	// Pre-log important startup messages before logger is initialized
	logging.PreLog("DEBUG", "Initializing sdkswitcher...")

	// Add subcommands
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(summaryCmd)

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default: "+config.PathEnvVar+" or the platform config directory)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		ExitWithError(err)
	}
}
