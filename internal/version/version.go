// Package version provides version information for scriptgate.
package version

// Version is the current version of scriptgate.
// Set at build time via: -ldflags "-X github.com/xdg/scriptgate/internal/version.Version=v1.0.0"
var Version = "dev"
