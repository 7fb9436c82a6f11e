package version

import (
	"path/filepath"
	"regexp"
	"strings"

	switchererrors "sdkswitcher/errors"
)

// Latest is the symbolic version resolved through the update check
const Latest = "latest"

// exactPattern matches a concrete version such as "1.9.57"
var exactPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsExact reports whether token is a concrete MAJOR.MINOR.PATCH version.
// Only exact versions are used as cache directory names and link targets.
func IsExact(token string) bool {
	return exactPattern.MatchString(token)
}

// IsLatest reports whether token is the symbolic "latest" version
func IsLatest(token string) bool {
	return token == Latest
}

// StripDots removes every dot, e.g. "1.8.0" → "180". Deprecated archive
// URLs use it as a path segment.
func StripDots(v string) string {
	return strings.ReplaceAll(v, ".", "")
}

// MatchFragment returns the candidates in which fragment occurs literally,
// anywhere in the string. "57" matches "1.9.57" and "57.0.1", not "5.7.0".
func MatchFragment(fragment string, candidates []string) []string {
	re := regexp.MustCompile(regexp.QuoteMeta(fragment))

	var matches []string
	for _, candidate := range candidates {
		if re.MatchString(candidate) {
			matches = append(matches, candidate)
		}
	}
	return matches
}

// ValidateName fails with INVALID_VERSION unless v can name a directory
// directly below the cache directory: not empty, not "." or "..", and free of
// path separators.
func ValidateName(v string) error {
	if v == "" || v == "." || v == ".." || filepath.Base(v) != v || strings.ContainsAny(v, `/\`) {
		return switchererrors.Newf(switchererrors.ErrInvalidVersion, "%q is not a usable SDK version", v).
			WithDetail("version", v)
	}
	return nil
}
