package repository

import (
	"bufio"
	"context"
	"io"
	"regexp"

	"sdkswitcher/downloader/network"
	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
)

// DefaultUpdateCheckURL publishes the current SDK release
const DefaultUpdateCheckURL = "https://appengine.google.com/api/updatecheck"

// releasePattern matches lines like: release: "1.9.57"
var releasePattern = regexp.MustCompile(`\brelease: "([^"]+)"`)

// UpdateChecker looks up the latest published SDK version
type UpdateChecker struct {
	url    string
	client *network.Client
}

// NewUpdateChecker creates an UpdateChecker for the public endpoint
func NewUpdateChecker(client *network.Client) *UpdateChecker {
	return NewUpdateCheckerWithURL(DefaultUpdateCheckURL, client)
}

// NewUpdateCheckerWithURL creates an UpdateChecker for a custom endpoint
func NewUpdateCheckerWithURL(url string, client *network.Client) *UpdateChecker {
	if client == nil {
		client = network.NewClient()
	}
	return &UpdateChecker{url: url, client: client}
}

// LatestVersion fetches the update check response and returns the first
// release version found in it.
func (c *UpdateChecker) LatestVersion(ctx context.Context) (string, error) {
	logging.LogDebug("🔍 Checking latest SDK version at %s", c.url)

	resp, err := c.client.Get(ctx, c.url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	release, err := ParseRelease(resp.Body)
	if err != nil {
		return "", err
	}

	logging.LogDebug("✅ Latest published version: %s", release)
	return release, nil
}

// ParseRelease scans r line by line and returns the version of the first
// `release: "<version>"` line. No matching line is an error.
func ParseRelease(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if match := releasePattern.FindStringSubmatch(scanner.Text()); match != nil {
			return match[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", switchererrors.Wrap(err, switchererrors.ErrNetwork, "failed to read update check response")
	}
	return "", switchererrors.New(switchererrors.ErrNetwork, "no release found in update check response")
}
