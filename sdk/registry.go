package sdk

import (
	"errors"
	"io/fs"
	"path/filepath"

	"sdkswitcher/config"
	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
	"sdkswitcher/repository/version"

	"github.com/spf13/afero"
)

// Registry discovers the versions installed in the cache directory.
//
// A child of the cache directory is an installed version when it contains a
// google_appengine directory. Nothing is persisted: every call reads the
// directory again.
type Registry struct {
	fs       afero.Fs
	cacheDir string
}

// NewRegistry creates a Registry over cacheDir
func NewRegistry(fsys afero.Fs, cacheDir string) *Registry {
	return &Registry{fs: fsys, cacheDir: cacheDir}
}

// CacheDir returns the directory holding installed versions
func (r *Registry) CacheDir() string {
	return r.cacheDir
}

// VersionDir returns <cache_dir>/<v>
func (r *Registry) VersionDir(v string) string {
	return filepath.Join(r.cacheDir, v)
}

// ListInstalled returns the installed versions in ascending version order,
// so 1.9.5 comes before 1.9.40. A missing cache directory yields an empty
// list.
func (r *Registry) ListInstalled() ([]string, error) {
	log := logging.GetLogger("sdk.registry")

	entries, err := afero.ReadDir(r.fs, r.cacheDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("cache_dir", r.cacheDir).Msg("cache directory does not exist yet")
			return []string{}, nil
		}
		return nil, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to list %s", r.cacheDir)
	}

	versions := []string{}
	for _, entry := range entries {
		marker := filepath.Join(r.cacheDir, entry.Name(), config.SDKRootName)
		if ok, _ := afero.IsDir(r.fs, marker); ok {
			versions = append(versions, entry.Name())
		}
	}

	version.Sort(versions)
	log.Debug().Strs("versions", versions).Msg("installed versions")
	return versions, nil
}

// IsInstalled reports whether v is among the installed versions
func (r *Registry) IsInstalled(v string) (bool, error) {
	installed, err := r.ListInstalled()
	if err != nil {
		return false, err
	}
	for _, candidate := range installed {
		if candidate == v {
			return true, nil
		}
	}
	return false, nil
}

// Remove deletes <cache_dir>/<v> and everything below it
func (r *Registry) Remove(v string) (string, error) {
	if err := version.ValidateName(v); err != nil {
		return "", err
	}
	dir := r.VersionDir(v)

	exists, err := afero.DirExists(r.fs, dir)
	if err != nil {
		return "", switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to inspect %s", dir)
	}
	if !exists {
		return "", switchererrors.Newf(switchererrors.ErrFilesystem, "SDK version %s is not installed", v).
			WithDetail("path", dir)
	}

	if err := r.fs.RemoveAll(dir); err != nil {
		return "", switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to remove %s", dir)
	}
	return dir, nil
}
