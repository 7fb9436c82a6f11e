package downloader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"sdkswitcher/config"
	"sdkswitcher/downloader/cache"
	"sdkswitcher/downloader/core"
	"sdkswitcher/downloader/network"
	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
	"sdkswitcher/repository"
	"sdkswitcher/repository/version"
)

// Archive is a downloaded SDK archive on local disk
type Archive struct {
	Path      string
	SourceURL string
}

// Manager orchestrates the download and installation process
type Manager struct {
	network   *network.Client
	extractor *Extractor
	cache     *cache.Manager
	validator *core.Validator
	mirror    repository.Mirror
	cacheDir  string
	tempDir   string
}

// NewManager creates a Manager installing versions below cacheDir
func NewManager(cacheDir string) *Manager {
	return NewManagerWithClient(cacheDir, repository.DefaultMirror(), network.NewClient())
}

// NewManagerWithClient creates a Manager with a custom mirror and client
func NewManagerWithClient(cacheDir string, mirror repository.Mirror, client *network.Client) *Manager {
	return &Manager{
		network:   client,
		extractor: NewExtractor(),
		cache:     cache.NewManager(""),
		validator: core.NewValidator(),
		mirror:    mirror,
		cacheDir:  cacheDir,
	}
}

// WithTempDir places downloaded archives in dir instead of the system
// temp directory
func (m *Manager) WithTempDir(dir string) *Manager {
	m.tempDir = dir
	m.cache = cache.NewManager(dir)
	return m
}

// VersionDir returns the directory a version is extracted into. Versions
// that are not a single path segment are rejected.
func (m *Manager) VersionDir(v string) (string, error) {
	if err := version.ValidateName(v); err != nil {
		return "", err
	}
	return filepath.Join(m.cacheDir, v), nil
}

// Download fetches the archive for v into a temporary file. A 404 from
// the featured location is retried once against the deprecated location.
func (m *Manager) Download(ctx context.Context, v string) (*Archive, error) {
	return m.download(ctx, core.DownloadOptions{
		Version:     v,
		DownloadURL: m.mirror.SDKURL(v),
		FallbackURL: m.mirror.DeprecatedSDKURL(v),
	})
}

func (m *Manager) download(ctx context.Context, opts core.DownloadOptions) (*Archive, error) {
	url := opts.DownloadURL
	resp, err := m.network.Get(ctx, url)
	if err != nil && network.IsNotFound(err) && opts.FallbackURL != "" {
		logging.LogDebug("⚠️ %s not found, trying deprecated location", url)
		url = opts.FallbackURL
		resp, err = m.network.Get(ctx, url)
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	suffix, err := core.SafeFilename(url)
	if err != nil {
		return nil, switchererrors.Wrap(err, switchererrors.ErrFilesystem, "cannot name downloaded archive")
	}

	tempDir := m.tempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := m.validator.ValidateSpace(resp.ContentLength, tempDir); err != nil {
		return nil, err
	}

	f, err := m.cache.CreateTemp(suffix)
	if err != nil {
		return nil, err
	}

	logging.LogDebug("⬇️ Downloading %s (%s) to %s", url, network.Describe(resp), f.Name())
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, switchererrors.Wrapf(err, switchererrors.ErrNetwork, "download of %s failed", url)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to write %s", f.Name())
	}

	return &Archive{Path: f.Name(), SourceURL: url}, nil
}

// Extract unpacks archivePath into <cache_dir>/<v> and marks the
// top-level SDK scripts executable.
func (m *Manager) Extract(archivePath, v string) (string, error) {
	installPath, err := m.VersionDir(v)
	if err != nil {
		return "", err
	}

	opts := core.ExtractOptions{
		ArchivePath: archivePath,
		Version:     v,
		InstallPath: installPath,
	}
	if err := m.extractor.Extract(opts); err != nil {
		return "", err
	}

	sdkDir := filepath.Join(opts.InstallPath, config.SDKRootName)
	info, err := os.Stat(sdkDir)
	if err != nil || !info.IsDir() {
		return "", switchererrors.Newf(switchererrors.ErrFilesystem, "archive for %s has no %s directory", v, config.SDKRootName).
			WithDetail("path", opts.InstallPath)
	}

	if err := MarkScriptsExecutable(sdkDir); err != nil {
		return "", err
	}
	return opts.InstallPath, nil
}

// DownloadAndExtract handles the complete download and installation process.
// The temporary archive is removed afterwards unless keepArchive is set.
func (m *Manager) DownloadAndExtract(ctx context.Context, v string, keepArchive bool) (*InstallMetadata, error) {
	logging.LogDebug("🔍 Starting installation process for SDK %s", v)

	if _, err := m.VersionDir(v); err != nil {
		return nil, err
	}

	archive, err := m.Download(ctx, v)
	if err != nil {
		return nil, err
	}

	installPath, err := m.Extract(archive.Path, v)
	if cleanupErr := m.cache.Cleanup(archive.Path, keepArchive); cleanupErr != nil {
		logging.LogDebug("⚠️ Cache cleanup failed: %v", cleanupErr)
	}
	if err != nil {
		return nil, err
	}

	metadata := InstallMetadata{
		Version:     v,
		SourceURL:   archive.SourceURL,
		InstalledAt: time.Now().UTC(),
	}
	if err := SaveMetadata(installPath, metadata); err != nil {
		return nil, err
	}

	logging.LogInfo("✅ Successfully extracted SDK version %s", v)
	return &metadata, nil
}
