package repository

import (
	"fmt"

	"sdkswitcher/repository/version"
)

const (
	// FeaturedURLTemplate takes the dotted version
	FeaturedURLTemplate = "https://storage.googleapis.com/appengine-sdks/featured/google_appengine_%s.zip"

	// DeprecatedURLTemplate takes the version without dots, then the dotted version
	DeprecatedURLTemplate = "https://storage.googleapis.com/appengine-sdks/deprecated/%s/google_appengine_%s.zip"
)

// Mirror holds the download URL templates for SDK archives
type Mirror struct {
	Featured   string
	Deprecated string
}

// DefaultMirror returns the public Google Cloud Storage locations
func DefaultMirror() Mirror {
	return Mirror{
		Featured:   FeaturedURLTemplate,
		Deprecated: DeprecatedURLTemplate,
	}
}

// SDKURL returns the primary download URL for v
func (m Mirror) SDKURL(v string) string {
	return fmt.Sprintf(m.Featured, v)
}

// DeprecatedSDKURL returns the archive URL used for versions that are no
// longer featured, e.g. .../deprecated/180/google_appengine_1.8.0.zip
func (m Mirror) DeprecatedSDKURL(v string) string {
	return fmt.Sprintf(m.Deprecated, version.StripDots(v), v)
}
