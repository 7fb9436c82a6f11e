package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"
)

// UserAgent is sent with every request
const UserAgent = "sdkswitcher"

// ErrNotFound is wrapped by Get when the server answers 404
var ErrNotFound = errors.New("resource not found")

// Client handles network operations
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Client. No timeout is set: SDK archives are large
// and callers bound requests through the context.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// NewClientWithHTTP creates a Client using the given http.Client
func NewClientWithHTTP(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Get issues a GET request and returns the response when the status is 200.
// The caller must close the body. A 404 is reported as a NETWORK_FAILURE
// wrapping ErrNotFound so callers can fall back to another location.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	logging.LogDebug("📡 Initiating network request to %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, switchererrors.Wrapf(err, switchererrors.ErrNetwork, "failed to create request for %s", url)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, switchererrors.Wrapf(err, switchererrors.ErrNetwork, "network request to %s failed", url)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, switchererrors.Wrapf(ErrNotFound, switchererrors.ErrNetwork, "GET %s", url)
	default:
		resp.Body.Close()
		return nil, switchererrors.Newf(switchererrors.ErrNetwork, "server returned non-OK status for %s: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}
}

// IsNotFound reports whether err came from a 404 response
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Describe returns a short description of a response body size for logs
func Describe(resp *http.Response) string {
	if resp.ContentLength < 0 {
		return "unknown size"
	}
	return fmt.Sprintf("%d bytes", resp.ContentLength)
}
