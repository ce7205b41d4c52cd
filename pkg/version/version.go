// Package version exposes build metadata injected at link time.
package version

// These are overridden with -ldflags "-X github.com/rshade/lcaengine/pkg/version.version=...".
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version = "0.1.0-dev"
	commit  = "none"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}
