// Package metric provides Prometheus metrics for respkv.
//
//   - prometheus.go: the Registry, its instruments and the HTTP handler
//   - collector.go: a pull-style collector for keyspace sizes
//
// Every Registry owns a private prometheus.Registry, so tests can create
// as many as they like without duplicate-registration panics. Global
// returns a process-wide instance for the server binary.
package metric
