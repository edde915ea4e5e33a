// Package confloader loads layered configuration with koanf and watches the
// configuration file for changes.
//
// Priority (highest to lowest):
//
//  1. Environment variables (RESPKV_SERVER_REDIS_ADDR -> server.redis.addr)
//  2. Configuration file (YAML)
//  3. Defaults supplied with WithDefaults
//
// The Watcher is used by the server to re-read hot-reloadable keys such as
// log.level without a restart.
package confloader
