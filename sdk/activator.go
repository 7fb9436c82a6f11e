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

// Activator maintains the google_appengine symlink pointing at the active
// version. The filesystem must support symlinks (afero.OsFs does).
type Activator struct {
	fs       afero.Fs
	cacheDir string
	link     string
}

// NewActivator creates an Activator for the symlink at link
func NewActivator(fsys afero.Fs, cacheDir, link string) *Activator {
	return &Activator{fs: fsys, cacheDir: cacheDir, link: link}
}

// Link returns the symlink path
func (a *Activator) Link() string {
	return a.link
}

// Target returns <cache_dir>/<v>/google_appengine
func (a *Activator) Target(v string) string {
	return filepath.Join(a.cacheDir, v, config.SDKRootName)
}

// Activate points the symlink at version v and returns the target. An
// existing link is replaced.
func (a *Activator) Activate(v string) (string, error) {
	linker, ok := a.fs.(afero.Linker)
	if !ok {
		return "", switchererrors.New(switchererrors.ErrFilesystem, "filesystem does not support symlinks")
	}

	if err := version.ValidateName(v); err != nil {
		return "", err
	}

	target := a.Target(v)
	log := logging.GetLogger("sdk.activator")
	log.Debug().Str("link", a.link).Str("target", target).Msg("activating")

	err := linker.SymlinkIfPossible(target, a.link)
	if errors.Is(err, fs.ErrExist) {
		log.Debug().Str("link", a.link).Msg("replacing existing link")
		if rmErr := a.fs.Remove(a.link); rmErr != nil {
			return "", switchererrors.Wrapf(rmErr, switchererrors.ErrFilesystem, "failed to remove existing link %s", a.link)
		}
		err = linker.SymlinkIfPossible(target, a.link)
	}
	if err != nil {
		return "", switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to link %s to %s", a.link, target)
	}

	return target, nil
}

// Current returns the active version, or "" when there is no link.
func (a *Activator) Current() (string, error) {
	reader, ok := a.fs.(afero.LinkReader)
	if !ok {
		return "", switchererrors.New(switchererrors.ErrFilesystem, "filesystem does not support symlinks")
	}

	target, err := reader.ReadlinkIfPossible(a.link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to read link %s", a.link)
	}

	if filepath.Base(target) != config.SDKRootName {
		return "", switchererrors.Newf(switchererrors.ErrCorruptActiveLink,
			"%s points to %s, which is not a %s directory", a.link, target, config.SDKRootName).
			WithDetail("link", a.link).
			WithDetail("target", target)
	}

	return filepath.Base(filepath.Dir(target)), nil
}

// Relocate moves the symlink to newLink. When a version is active and the
// path changes, the new link is created first and the old one removed only
// after that succeeded. It reports whether a link was moved.
func (a *Activator) Relocate(newLink string) (bool, error) {
	active, err := a.Current()
	if err != nil {
		return false, err
	}

	oldLink := a.link
	if active == "" || oldLink == newLink {
		a.link = newLink
		return false, nil
	}

	if _, err := NewActivator(a.fs, a.cacheDir, newLink).Activate(active); err != nil {
		return false, err
	}
	a.link = newLink

	if oldLink != "" {
		if err := a.fs.Remove(oldLink); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return true, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to remove old link %s", oldLink)
		}
	}
	return true, nil
}
