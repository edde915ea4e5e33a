package repl

import (
	"sort"
	"strings"

	"github.com/yndnr/respkv/internal/core/command"
)

// Builtins are handled by the REPL itself rather than sent to the server.
var Builtins = []string{"connect", "disconnect", "help", "exit", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the server commands and the REPL
// built-ins.
func NewCompleter() *Completer {
	cmds := append([]string{"PING", "QUIT"}, command.Names()...)
	for _, b := range Builtins {
		if b != "quit" {
			cmds = append(cmds, b)
		}
	}
	sort.Strings(cmds)
	return &Completer{commands: cmds}
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	p := strings.ToUpper(prefix)
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), p) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
