package sdk

import (
	"os"
	"path/filepath"
	"testing"

	switchererrors "sdkswitcher/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type activatorFixture struct {
	fs       afero.Fs
	cacheDir string
	linkDir  string
}

func newActivatorFixture(t *testing.T) activatorFixture {
	t.Helper()
	root := t.TempDir()
	f := activatorFixture{
		fs:       afero.NewOsFs(),
		cacheDir: filepath.Join(root, "cache"),
		linkDir:  filepath.Join(root, "home"),
	}
	require.NoError(t, os.MkdirAll(f.linkDir, 0o755))
	installFake(t, f.fs, f.cacheDir, "1.9.57", "1.9.60")
	return f
}

func (f activatorFixture) activator(linkDir string) *Activator {
	return NewActivator(f.fs, f.cacheDir, filepath.Join(linkDir, "google_appengine"))
}

func TestActivateThenCurrent(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	current, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "", current)

	target, err := a.Activate("1.9.57")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.cacheDir, "1.9.57", "google_appengine"), target)

	current, err = a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", current)

	linked, err := os.Readlink(a.Link())
	require.NoError(t, err)
	assert.Equal(t, target, linked)
}

func TestActivateIsIdempotent(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	for i := 0; i < 2; i++ {
		_, err := a.Activate("1.9.57")
		require.NoError(t, err)

		current, err := a.Current()
		require.NoError(t, err)
		assert.Equal(t, "1.9.57", current)
	}
}

func TestActivateReplacesStaleLink(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	require.NoError(t, os.Symlink(filepath.Join(f.cacheDir, "0.0.1", "google_appengine"), a.Link()))

	_, err := a.Activate("1.9.60")
	require.NoError(t, err)

	current, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.9.60", current)
}

func TestActivateMissingParent(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(filepath.Join(f.linkDir, "missing"))

	_, err := a.Activate("1.9.57")
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))
}

func TestCurrentCorruptLink(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	require.NoError(t, os.Symlink(filepath.Join(f.cacheDir, "1.9.57"), a.Link()))

	_, err := a.Current()
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrCorruptActiveLink))
}

func TestCurrentNotALink(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	require.NoError(t, os.WriteFile(a.Link(), []byte("plain file"), 0o644))

	_, err := a.Current()
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))
}

func TestActivatorRequiresSymlinks(t *testing.T) {
	a := NewActivator(afero.NewMemMapFs(), testCacheDir, "/home/user/google_appengine")

	_, err := a.Activate("1.9.57")
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))

	_, err = a.Current()
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrFilesystem))
}

func TestRelocateMovesActiveLink(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)
	oldLink := a.Link()

	_, err := a.Activate("1.9.57")
	require.NoError(t, err)

	newDir := filepath.Join(filepath.Dir(f.linkDir), "bin")
	require.NoError(t, os.MkdirAll(newDir, 0o755))
	newLink := filepath.Join(newDir, "google_appengine")

	moved, err := a.Relocate(newLink)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, newLink, a.Link())

	_, err = os.Lstat(oldLink)
	assert.True(t, os.IsNotExist(err))

	current, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", current)
}

func TestRelocateWithoutActiveVersion(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)
	newLink := filepath.Join(f.linkDir, "sub", "google_appengine")

	moved, err := a.Relocate(newLink)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, newLink, a.Link())

	_, err = os.Lstat(newLink)
	assert.True(t, os.IsNotExist(err))
}

func TestRelocateSamePath(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)
	_, err := a.Activate("1.9.57")
	require.NoError(t, err)

	moved, err := a.Relocate(a.Link())
	require.NoError(t, err)
	assert.False(t, moved)

	current, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", current)
}

func TestRelocateFailureKeepsOldLink(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)
	oldLink := a.Link()
	_, err := a.Activate("1.9.57")
	require.NoError(t, err)

	_, err = a.Relocate(filepath.Join(f.linkDir, "missing", "google_appengine"))
	require.Error(t, err)
	assert.Equal(t, oldLink, a.Link())

	current, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", current)
}

func TestActivateRejectsUnusableVersion(t *testing.T) {
	f := newActivatorFixture(t)
	a := f.activator(f.linkDir)

	for _, v := range []string{"", ".", "..", "../1.9.57"} {
		_, err := a.Activate(v)
		require.Error(t, err, v)
		assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrInvalidVersion), v)
	}

	_, err := os.Lstat(a.Link())
	assert.True(t, os.IsNotExist(err))
}
