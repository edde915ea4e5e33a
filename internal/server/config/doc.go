// Package config defines the respkv-server configuration.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values, as a struct and as a koanf default layer
//   - verify.go: validation run before anything listens
//
// Configuration is loaded via internal/infra/confloader from a YAML file and
// RESPKV_* environment variables.
package config
