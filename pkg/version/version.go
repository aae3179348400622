// Package version holds the build version, set at link time with
// -ldflags "-X github.com/kraitsura/nomofobia/pkg/version.Version=v1.2.3".
package version

// Version is the current release.
var Version = "v0.3.0"
