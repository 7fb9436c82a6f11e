package core

import (
	"os"
	"path/filepath"

	switchererrors "sdkswitcher/errors"
)

// Validator handles system validations
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSpace checks available space
func (v *Validator) ValidateSpace(required int64, directory string) error {
	return CheckDiskSpace(required, directory)
}

// ValidateDirectories checks and creates necessary directories
func (v *Validator) ValidateDirectories(installPath string) error {
	if err := os.MkdirAll(installPath, 0755); err != nil {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to create installation directory %s", installPath)
	}
	return nil
}

// CheckDiskSpace fails when the filesystem holding directory has less than
// required bytes available. The directory does not need to exist yet: the
// nearest existing parent is checked instead.
func CheckDiskSpace(required int64, directory string) error {
	if required <= 0 {
		return nil
	}

	dir := existingParent(directory)
	available, ok, err := availableSpace(dir)
	if err != nil {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to check free space in %s", dir)
	}
	if !ok {
		return nil
	}

	if uint64(required) > available {
		return switchererrors.Newf(switchererrors.ErrFilesystem,
			"not enough disk space in %s: %s required, %s available",
			dir, FormatSize(uint64(required)), FormatSize(available)).
			WithDetail("required", required).
			WithDetail("available", available)
	}
	return nil
}

func existingParent(path string) string {
	path = filepath.Clean(path)
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
