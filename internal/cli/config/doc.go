// Package config holds the respkv-cli settings file (~/.respkv/cli.yaml).
//
//   - spec.go: CLIConfig and its defaults
//   - loader.go: loading, validating, saving and flag/env merging
package config
