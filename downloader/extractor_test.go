package downloader

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"sdkswitcher/downloader/core"
	switchererrors "sdkswitcher/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

type archiveEntry struct {
	name string
	body string
	mode os.FileMode
}

var sdkEntries = []archiveEntry{
	{name: "google_appengine/", mode: os.ModeDir | 0o755},
	{name: "google_appengine/dev_appserver.py", body: "#!/usr/bin/env python\n", mode: 0o644},
	{name: "google_appengine/appcfg.py", body: "#!/usr/bin/env python\n", mode: 0o644},
	{name: "google_appengine/VERSION", body: "release: \"1.9.57\"\n", mode: 0o644},
	{name: "google_appengine/lib/", mode: os.ModeDir | 0o755},
	{name: "google_appengine/lib/helper.py", body: "pass\n", mode: 0o644},
}

func writeZip(t *testing.T, path string, entries []archiveEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		header.SetMode(e.mode)
		w, err := zw.CreateHeader(header)
		require.NoError(t, err)
		if e.body != "" {
			_, err = w.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
}

func tarBytes(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		header := &tar.Header{Name: e.name, Mode: int64(e.mode.Perm()), Size: int64(len(e.body)), Typeflag: tar.TypeReg}
		if e.mode.IsDir() {
			header.Typeflag = tar.TypeDir
			header.Size = 0
		}
		require.NoError(t, tw.WriteHeader(header))
		if e.body != "" {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func writeCompressed(t *testing.T, path string, data []byte, wrap func(io.Writer) (io.WriteCloser, error)) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := wrap(f)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func assertExtractedSDK(t *testing.T, dest string) {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dest, "google_appengine", "VERSION"))
	require.NoError(t, err)
	assert.Equal(t, "release: \"1.9.57\"\n", string(content))
	assert.FileExists(t, filepath.Join(dest, "google_appengine", "lib", "helper.py"))
}

func TestExtractFormats(t *testing.T) {
	tests := []struct {
		name    string
		archive string
		write   func(t *testing.T, path string)
	}{
		{
			name:    "zip",
			archive: "google_appengine_1.9.57.zip",
			write: func(t *testing.T, path string) {
				writeZip(t, path, sdkEntries)
			},
		},
		{
			name:    "tar.gz",
			archive: "google_appengine_1.9.57.tar.gz",
			write: func(t *testing.T, path string) {
				writeCompressed(t, path, tarBytes(t, sdkEntries), func(w io.Writer) (io.WriteCloser, error) {
					return gzip.NewWriter(w), nil
				})
			},
		},
		{
			name:    "tar.xz",
			archive: "google_appengine_1.9.57.tar.xz",
			write: func(t *testing.T, path string) {
				writeCompressed(t, path, tarBytes(t, sdkEntries), func(w io.Writer) (io.WriteCloser, error) {
					return xz.NewWriter(w)
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			archive := filepath.Join(tmp, tt.archive)
			tt.write(t, archive)

			dest := filepath.Join(tmp, "cache", "1.9.57")
			require.NoError(t, NewExtractor().Extract(core.ExtractOptions{
				ArchivePath: archive,
				Version:     "1.9.57",
				InstallPath: dest,
			}))
			assertExtractedSDK(t, dest)
		})
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "evil.zip")
	writeZip(t, archive, []archiveEntry{
		{name: "../outside.txt", body: "nope", mode: 0o644},
	})

	err := NewExtractor().Extract(core.ExtractOptions{
		ArchivePath: archive,
		Version:     "1.9.57",
		InstallPath: filepath.Join(tmp, "dest"),
	})
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))
	assert.NoFileExists(t, filepath.Join(tmp, "outside.txt"))
}

func TestExtractUnsupportedFormat(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "sdk.rar")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0o644))

	err := NewExtractor().Extract(core.ExtractOptions{
		ArchivePath: archive,
		Version:     "1.9.57",
		InstallPath: filepath.Join(tmp, "dest"),
	})
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))
}

func TestExtractRejectsUnusableVersion(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "google_appengine_1.9.57.zip")
	writeZip(t, archive, sdkEntries)

	for _, v := range []string{"", ".", "..", "../1.9.57"} {
		dest := filepath.Join(tmp, "dest", v)
		err := NewExtractor().Extract(core.ExtractOptions{ArchivePath: archive, Version: v, InstallPath: dest})
		require.Error(t, err, v)
		assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrInvalidVersion), v)
	}
	assert.NoDirExists(t, filepath.Join(tmp, "google_appengine"))
	assert.NoDirExists(t, filepath.Join(tmp, "dest"))
}

func TestMarkScriptsExecutable(t *testing.T) {
	sdkDir := filepath.Join(t.TempDir(), "google_appengine")
	require.NoError(t, os.MkdirAll(filepath.Join(sdkDir, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sdkDir, "dev_appserver.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sdkDir, "README"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sdkDir, "lib", "nested.py"), nil, 0o644))

	require.NoError(t, MarkScriptsExecutable(sdkDir))

	mode := func(name string) os.FileMode {
		info, err := os.Stat(filepath.Join(sdkDir, name))
		require.NoError(t, err)
		return info.Mode().Perm()
	}
	assert.Equal(t, os.FileMode(0o755), mode("dev_appserver.py"))
	assert.Equal(t, os.FileMode(0o644), mode("README"))
	assert.Equal(t, os.FileMode(0o644), mode(filepath.Join("lib", "nested.py")))
}
