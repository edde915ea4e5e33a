// Package command defines the respkv-cli application with urfave/cli/v2.
//
// Arguments that do not name a subcommand are sent to the server as one
// command and the reply is printed; with no arguments the interactive REPL
// starts.
//
//   - root.go: the application, global flags and settings resolution
//   - ping.go: the ping subcommand
//   - config.go: the config subcommand group for ~/.respkv/cli.yaml
package command
