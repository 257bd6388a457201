// Package version reports HealthVerse build information.
//
// Values are stamped at link time and fall back to the VCS data the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/healthverse/version.Version=1.2.0" ./cmd/healthverse
package version
