package cache

import (
	"os"

	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
)

// TempPrefix starts the name of every downloaded archive
const TempPrefix = "sdkswitcher-"

// Manager handles the temporary files holding downloaded archives
type Manager struct {
	tempDir string
}

// NewManager creates a Manager writing into tempDir, or the system temp
// directory when tempDir is empty
func NewManager(tempDir string) *Manager {
	return &Manager{tempDir: tempDir}
}

// CreateTemp creates a uniquely named file ending in suffix
func (m *Manager) CreateTemp(suffix string) (*os.File, error) {
	if m.tempDir != "" {
		if err := os.MkdirAll(m.tempDir, 0755); err != nil {
			return nil, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to create directory %s", m.tempDir)
		}
	}

	f, err := os.CreateTemp(m.tempDir, TempPrefix+"*-"+suffix)
	if err != nil {
		return nil, switchererrors.Wrap(err, switchererrors.ErrFilesystem, "failed to create temporary file")
	}
	return f, nil
}

// Cleanup removes a downloaded archive unless keep is set
func (m *Manager) Cleanup(path string, keep bool) error {
	if keep {
		logging.LogDebug("📁 Keeping downloaded archive: %s", path)
		return nil
	}

	logging.LogDebug("🧹 Removing downloaded archive: %s", path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to remove %s", path)
	}
	return nil
}
