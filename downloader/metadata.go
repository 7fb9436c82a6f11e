package downloader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	switchererrors "sdkswitcher/errors"
)

// MetadataFileName is stored in each installed version directory
const MetadataFileName = ".sdkswitcher-metadata.json"

// InstallMetadata records where an installed version came from
type InstallMetadata struct {
	Version     string    `json:"version"`
	SourceURL   string    `json:"source_url"`
	InstalledAt time.Time `json:"installed_at"`
}

// SaveMetadata writes metadata to .sdkswitcher-metadata.json in the version directory
func SaveMetadata(versionDir string, metadata InstallMetadata) error {
	metadataPath := filepath.Join(versionDir, MetadataFileName)

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return switchererrors.Wrap(err, switchererrors.ErrFilesystem, "failed to encode install metadata")
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to write %s", metadataPath)
	}
	return nil
}

// LoadMetadata reads metadata from .sdkswitcher-metadata.json in the version directory
func LoadMetadata(versionDir string) (*InstallMetadata, error) {
	metadataPath := filepath.Join(versionDir, MetadataFileName)

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No metadata file, not an error
		}
		return nil, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to read %s", metadataPath)
	}

	var metadata InstallMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "invalid metadata in %s", metadataPath)
	}

	return &metadata, nil
}
