// Package connection manages the respkv-cli connection to a server.
//
//   - client.go: a RESP client over TCP built on resp.Framer
//   - manager.go: the current connection, switched by the REPL's connect
package connection
