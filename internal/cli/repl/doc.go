// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: the read-eval-print loop and its built-in commands
//   - args.go: splitting an input line into arguments, with quoting
//   - completer.go: command name completion
//   - history.go: command history persistence
package repl
