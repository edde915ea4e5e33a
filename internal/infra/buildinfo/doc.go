// Package buildinfo exposes version information for the respkv binaries.
//
// Version, Commit and BuildTime are injected with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v0.3.0 \
//	    -X github.com/yndnr/respkv/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// When they are not injected, Get falls back to the VCS stamp embedded by
// the Go toolchain.
package buildinfo
