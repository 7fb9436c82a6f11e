package downloader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sdkswitcher/downloader/core"
	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
	"sdkswitcher/repository/version"

	"github.com/ulikunitz/xz"
)

// Extractor unpacks downloaded SDK archives
type Extractor struct {
	validator *core.Validator
}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{validator: core.NewValidator()}
}

// Extract unpacks opts.ArchivePath into opts.InstallPath. The format is
// chosen by the archive suffix: .zip, .tar.gz / .tgz or .tar.xz.
func (e *Extractor) Extract(opts core.ExtractOptions) error {
	if err := version.ValidateName(opts.Version); err != nil {
		return err
	}

	archivePath, destPath := opts.ArchivePath, opts.InstallPath
	logging.LogDebug("📦 Extracting SDK %s from %s to %s", opts.Version, archivePath, destPath)

	if err := e.validator.ValidateDirectories(destPath); err != nil {
		return err
	}

	lower := strings.ToLower(archivePath)
	var err error
	switch {
	case strings.HasSuffix(lower, ".zip"):
		err = e.extractZip(archivePath, destPath)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		err = e.extractTarGz(archivePath, destPath)
	case strings.HasSuffix(lower, ".tar.xz"):
		err = e.extractTarXz(archivePath, destPath)
	default:
		return switchererrors.Newf(switchererrors.ErrFilesystem, "unsupported archive format: %s", filepath.Base(archivePath)).
			WithDetail("version", opts.Version)
	}
	if err != nil {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to extract SDK %s from %s", opts.Version, filepath.Base(archivePath))
	}
	return nil
}

func (e *Extractor) extractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	var size uint64
	for _, file := range reader.File {
		size += file.UncompressedSize64
	}
	if err := e.validator.ValidateSpace(core.ClampSize(size), dest); err != nil {
		return err
	}

	for _, file := range reader.File {
		target, err := safeJoin(dest, file.Name)
		if err != nil {
			return err
		}

		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}
		case mode&os.ModeSymlink != 0:
			rc, err := file.Open()
			if err != nil {
				return fmt.Errorf("open zip entry %s: %w", file.Name, err)
			}
			linkname, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return fmt.Errorf("read link %s: %w", file.Name, err)
			}
			if err := writeSymlink(dest, target, string(linkname)); err != nil {
				return err
			}
		default:
			rc, err := file.Open()
			if err != nil {
				return fmt.Errorf("open zip entry %s: %w", file.Name, err)
			}
			err = writeFile(target, rc, mode.Perm())
			rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Extractor) extractTarGz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	if err := e.validateArchiveSpace(file, dest); err != nil {
		return err
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer gz.Close()

	return untarStream(gz, dest)
}

func (e *Extractor) extractTarXz(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	if err := e.validateArchiveSpace(file, dest); err != nil {
		return err
	}

	xzr, err := xz.NewReader(file)
	if err != nil {
		return fmt.Errorf("xz reader: %w", err)
	}

	return untarStream(xzr, dest)
}

// validateArchiveSpace checks the compressed size only: tar streams do not
// record the unpacked total up front.
func (e *Extractor) validateArchiveSpace(file *os.File, dest string) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	return e.validator.ValidateSpace(info.Size(), dest)
}

func untarStream(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, header.Linkname); err != nil {
				return err
			}
		default:
			logging.LogDebug("Skipping tar entry %s (type %c)", header.Name, header.Typeflag)
		}
	}
	return nil
}

// safeJoin resolves an archive entry name below dest, rejecting names that
// would escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, target) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, dest)
	}
	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare file %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	return nil
}

func writeSymlink(dest, target, linkname string) error {
	resolved := linkname
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), linkname)
	}
	if !within(dest, resolved) {
		return fmt.Errorf("symlink %s -> %s escapes %s", target, linkname, dest)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare link %s: %w", target, err)
	}
	_ = os.Remove(target)
	if err := os.Symlink(linkname, target); err != nil {
		return fmt.Errorf("create link %s: %w", target, err)
	}
	return nil
}

// MarkScriptsExecutable adds the execute bits to the *.py files directly
// inside sdkDir. Subdirectories are left alone.
func MarkScriptsExecutable(sdkDir string) error {
	entries, err := os.ReadDir(sdkDir)
	if err != nil {
		return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to read %s", sdkDir)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}
		path := filepath.Join(sdkDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to stat %s", path)
		}
		if err := os.Chmod(path, info.Mode()|0o111); err != nil {
			return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to make %s executable", path)
		}
	}
	return nil
}
