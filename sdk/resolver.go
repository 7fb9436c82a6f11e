package sdk

import (
	"context"
	"strings"

	switchererrors "sdkswitcher/errors"
	"sdkswitcher/repository/version"
)

// LatestSource looks up the current published version
type LatestSource interface {
	LatestVersion(ctx context.Context) (string, error)
}

// InstalledLister lists installed versions in order
type InstalledLister interface {
	ListInstalled() ([]string, error)
}

// Resolver turns a user supplied version token into one concrete version
type Resolver struct {
	installed InstalledLister
	latest    LatestSource
}

// NewResolver creates a Resolver
func NewResolver(installed InstalledLister, latest LatestSource) *Resolver {
	return &Resolver{installed: installed, latest: latest}
}

// Resolve maps token to a version. The first matching rule wins:
//
//   - "latest" asks the LatestSource and returns its answer as is
//   - an exact MAJOR.MINOR.PATCH version is returned unchanged, installed or not
//   - anything else must occur literally in exactly one installed version
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	if version.IsLatest(token) {
		if r.latest == nil {
			return "", switchererrors.New(switchererrors.ErrNetwork, "no update check configured")
		}
		return r.latest.LatestVersion(ctx)
	}

	if version.IsExact(token) {
		return token, nil
	}

	installed, err := r.installed.ListInstalled()
	if err != nil {
		return "", err
	}

	matches := version.MatchFragment(token, installed)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", switchererrors.Newf(switchererrors.ErrInvalidVersion, "no installed SDK version matches %q", token).
			WithDetail("token", token).
			WithDetail("installed", installed)
	default:
		return "", switchererrors.Newf(switchererrors.ErrInvalidVersion, "%q is ambiguous, it matches %s", token, strings.Join(matches, ", ")).
			WithDetail("token", token).
			WithDetail("candidates", matches)
	}
}
