package cmd

import (
	"sdkswitcher/config"
	"sdkswitcher/downloader"
	"sdkswitcher/downloader/network"
	"sdkswitcher/logging"
	"sdkswitcher/repository"
	"sdkswitcher/sdk"

	"github.com/spf13/afero"
)

// Endpoints and filesystem used by the commands; tests point them elsewhere
var (
	newFs          = afero.NewOsFs
	updateCheckURL = repository.DefaultUpdateCheckURL
	sdkMirror      = repository.DefaultMirror()
)

// app wires the components for one invocation from the loaded preferences
type app struct {
	registry  *sdk.Registry
	resolver  *sdk.Resolver
	activator *sdk.Activator
	checker   *repository.UpdateChecker
	downloads *downloader.Manager
}

func newApp(cfg *config.Config) *app {
	fsys := newFs()
	client := network.NewClient()
	cacheDir := cfg.CacheDir()

	registry := sdk.NewRegistry(fsys, cacheDir)
	checker := repository.NewUpdateCheckerWithURL(updateCheckURL, client)

	return &app{
		registry:  registry,
		resolver:  sdk.NewResolver(registry, checker),
		activator: sdk.NewActivator(fsys, cacheDir, cfg.SDKLink()),
		checker:   checker,
		downloads: downloader.NewManagerWithClient(cacheDir, sdkMirror, client),
	}
}

// activate points the symlink at v and reports the version now active
func (a *app) activate(v string) error {
	if _, err := a.activator.Activate(v); err != nil {
		return err
	}
	active, err := a.activator.Current()
	if err != nil {
		return err
	}
	logging.LogOutput("SDK version %s is now active.", active)
	return nil
}
