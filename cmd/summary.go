package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"sdkswitcher/downloader"
	"sdkswitcher/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "List installed SDK versions and show the active one",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

// SummaryOutput describes the cache and the installed versions
type SummaryOutput struct {
	ConfigFile string        `json:"config_file"`
	CacheDir   string        `json:"cache_dir"`
	Link       string        `json:"link"`
	Active     string        `json:"active,omitempty"`
	Versions   []VersionInfo `json:"versions"`
}

// VersionInfo describes one installed version
type VersionInfo struct {
	Version     string     `json:"version"`
	Active      bool       `json:"active"`
	SourceURL   string     `json:"source_url,omitempty"`
	InstalledAt *time.Time `json:"installed_at,omitempty"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	summary, err := collectSummary(newApp(cfg), cfg.Path())
	if err != nil {
		return err
	}

	if GetJsonOutput() {
		return OutputJSON(summary)
	}

	highlight := logging.Output() == os.Stdout && logging.IsTerminal(os.Stdout)
	logging.LogOutput("%s", formatSummary(summary, highlight))
	return nil
}

func collectSummary(a *app, configFile string) (*SummaryOutput, error) {
	versions, err := a.registry.ListInstalled()
	if err != nil {
		return nil, err
	}
	active, err := a.activator.Current()
	if err != nil {
		return nil, err
	}

	summary := &SummaryOutput{
		ConfigFile: configFile,
		CacheDir:   a.registry.CacheDir(),
		Link:       a.activator.Link(),
		Active:     active,
		Versions:   make([]VersionInfo, 0, len(versions)),
	}

	for _, v := range versions {
		info := VersionInfo{Version: v, Active: v == active}
		metadata, err := downloader.LoadMetadata(a.registry.VersionDir(v))
		if err != nil {
			logging.LogDebug("⚠️ Ignoring metadata of %s: %v", v, err)
		} else if metadata != nil {
			info.SourceURL = metadata.SourceURL
			installedAt := metadata.InstalledAt
			info.InstalledAt = &installedAt
		}
		summary.Versions = append(summary.Versions, info)
	}

	return summary, nil
}

// formatSummary renders the summary text. Each version is right-aligned to
// ten columns and the active one is flagged with " *".
func formatSummary(s *SummaryOutput, highlight bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reading preferences from %s\n", s.ConfigFile)
	fmt.Fprintf(&b, "%d SDKs in %s\n", len(s.Versions), s.CacheDir)
	fmt.Fprintf(&b, "SDK symlink is %s\n", s.Link)
	b.WriteString("\n")

	for _, v := range s.Versions {
		line := fmt.Sprintf("%10s", v.Version)
		if v.Active {
			line += " *"
			if highlight {
				line = activeStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
