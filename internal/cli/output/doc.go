// Package output renders server replies for respkv-cli.
//
//   - text.go: redis-cli style rendering (the default)
//   - table.go: key/value tables for maps and flat arrays
//   - json.go, yaml.go: machine-readable output via ToValue
package output
