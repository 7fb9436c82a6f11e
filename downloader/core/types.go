package core

// DownloadOptions describes a single SDK archive download
type DownloadOptions struct {
	Version     string
	DownloadURL string
	// FallbackURL is tried once when DownloadURL answers 404
	FallbackURL string
}

// ExtractOptions describes the unpacking of a downloaded archive
type ExtractOptions struct {
	ArchivePath string
	Version     string
	InstallPath string
}
