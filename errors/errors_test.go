package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitcherErrorMessage(t *testing.T) {
	err := New(ErrInvalidVersion, "no installed version matches 57")
	assert.Equal(t, "[INVALID_VERSION] no installed version matches 57", err.Error())

	wrapped := Wrap(os.ErrPermission, ErrFilesystem, "failed to create symlink")
	assert.Equal(t, "[FILESYSTEM_FAILURE] failed to create symlink: permission denied", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrNetwork, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrNetwork, "ignored %d", 1))
}

func TestErrorCodeHelpers(t *testing.T) {
	base := Newf(ErrNetwork, "GET %s returned %d", "https://example.com", 500)
	outer := fmt.Errorf("check failed: %w", base)

	assert.True(t, IsErrorCode(outer, ErrNetwork))
	assert.False(t, IsErrorCode(outer, ErrFilesystem))
	assert.Equal(t, ErrNetwork, GetErrorCode(outer))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
	assert.True(t, errors.Is(outer, New(ErrNetwork, "")))
}

func TestWrappedCauseIsReachable(t *testing.T) {
	err := Wrapf(os.ErrExist, ErrFilesystem, "symlink %s", "/tmp/link")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestWithDetail(t *testing.T) {
	err := New(ErrInvalidVersion, "ambiguous").WithDetail("matches", []string{"1.8.57", "1.9.57"})
	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, []string{"1.8.57", "1.9.57"}, details["matches"])
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
