// Package version exposes the build version.
package version

// Version is set at build time:
//
//	go build -ldflags "-X github.com/neox5/metricbox/internal/version.Version=v1.2.3"
var Version = "dev"

// String returns the build version.
func String() string {
	return Version
}
