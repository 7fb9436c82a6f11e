package core

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeChars = regexp.MustCompile(`[^-_.a-zA-Z0-9]+`)
	dotRuns     = regexp.MustCompile(`\.+`)
)

// SafeFilename derives a file name from the last path segment of url.
//
// Characters outside [-_.a-zA-Z0-9] become dots, runs of dots collapse to
// one and leading or trailing dots are trimmed:
//
//	SafeFilename("https://host/path/google_appengine_1.9.57.zip") → "google_appengine_1.9.57.zip"
//	SafeFilename("foo/../../..bar..zip..") → "bar.zip"
//
// An empty result is an error.
func SafeFilename(url string) (string, error) {
	trimmed := strings.Trim(url, "/")
	name := trimmed[strings.LastIndex(trimmed, "/")+1:]

	name = unsafeChars.ReplaceAllString(name, ".")
	name = dotRuns.ReplaceAllString(name, ".")
	name = strings.Trim(name, ".")

	if name == "" {
		return "", fmt.Errorf("no usable file name in %q", url)
	}
	return name, nil
}
