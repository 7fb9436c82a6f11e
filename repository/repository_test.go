package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sdkswitcher/downloader/network"
	switchererrors "sdkswitcher/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updateCheckResponse = `release: "1.9.57"
timestamp: 1516312066
api_versions: ['1']
supported_api_versions:
  python:
    api_versions: ['1']
  python27:
    api_versions: ['1']
  go:
    api_versions: ['go1', 'go1.6', 'go1.8']
  java7:
    api_versions: ['1.0']
`

func TestParseRelease(t *testing.T) {
	release, err := ParseRelease(strings.NewReader(updateCheckResponse))
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", release)
}

func TestParseReleaseFirstMatchWins(t *testing.T) {
	release, err := ParseRelease(strings.NewReader("foo\nrelease: \"2.0.0\"\nrelease: \"3.0.0\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", release)
}

func TestParseReleaseNoMatch(t *testing.T) {
	_, err := ParseRelease(strings.NewReader("timestamp: 1516312066\nprerelease: 1.9.58\n"))
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrNetwork))
}

func TestUpdateCheckerWithMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/updatecheck", r.URL.Path)
		_, _ = w.Write([]byte(updateCheckResponse))
	}))
	defer server.Close()

	checker := NewUpdateCheckerWithURL(server.URL+"/api/updatecheck", network.NewClient())
	release, err := checker.LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.9.57", release)
}

func TestUpdateCheckerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewUpdateCheckerWithURL(server.URL, nil).LatestVersion(context.Background())
	require.Error(t, err)
	assert.True(t, switchererrors.IsErrorCode(err, switchererrors.ErrNetwork))
}

func TestMirrorURLs(t *testing.T) {
	m := DefaultMirror()
	assert.Equal(t,
		"https://storage.googleapis.com/appengine-sdks/featured/google_appengine_1.9.57.zip",
		m.SDKURL("1.9.57"))
	assert.Equal(t,
		"https://storage.googleapis.com/appengine-sdks/deprecated/180/google_appengine_1.8.0.zip",
		m.DeprecatedSDKURL("1.8.0"))
}
