package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
)

// Options configures a REPL. Zero fields take defaults: stdin, stdout,
// text output and an in-memory history.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	Manager   *connection.Manager
	Formatter output.Formatter
	History   *History
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	conns     *connection.Manager
	formatter output.Formatter
	completer *Completer
	history   *History
}

// New creates a new REPL instance.
func New(opts Options) *REPL {
	r := &REPL{
		input:     opts.Input,
		output:    opts.Output,
		conns:     opts.Manager,
		formatter: opts.Formatter,
		completer: NewCompleter(),
		history:   opts.History,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.conns == nil {
		r.conns = connection.NewManager(0)
	}
	if r.formatter == nil {
		r.formatter = &output.TextFormatter{}
	}
	if r.history == nil {
		r.history = NewHistory("")
	}
	return r
}

func (r *REPL) prompt() string {
	if c, err := r.conns.Current(); err == nil {
		return c.Addr() + "> "
	}
	return "not connected> "
}

// Run reads lines until exit, quit or end of input. History is loaded
// before and saved after.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "Warning: save history: %v\n", err)
		}
	}()

	reader := bufio.NewReader(r.input)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err == io.EOF && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		args, splitErr := SplitArgs(line)
		if splitErr != nil {
			fmt.Fprintf(r.output, "Error: %v\n", splitErr)
			continue
		}
		if len(args) == 0 {
			continue
		}

		name := strings.ToLower(args[0])
		if name == "exit" || name == "quit" {
			return nil
		}
		if err := r.execute(ctx, name, args); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(ctx context.Context, name string, args []string) error {
	switch name {
	case "help":
		r.printHelp()
		return nil
	case "connect":
		if len(args) != 2 {
			return fmt.Errorf("usage: connect <host[:port]>")
		}
		if err := r.conns.Connect(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(r.output, "OK")
		return nil
	case "disconnect":
		r.conns.Disconnect()
		return nil
	}

	c, err := r.conns.Current()
	if err != nil {
		return fmt.Errorf("%w (use: connect <host[:port]>)", err)
	}
	reply, err := c.Do(args...)
	if err != nil {
		// The stream is unusable after a transport error.
		r.conns.Disconnect()
		return err
	}
	return r.formatter.Format(r.output, reply)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands are sent to the server as typed, e.g. SET key \"a value\".")
	fmt.Fprintln(r.output, "Built-ins: connect <host[:port]>, disconnect, help, exit, quit")
	fmt.Fprintln(r.output, "Server commands:")
	for _, c := range r.completer.Complete("") {
		if c == strings.ToUpper(c) {
			fmt.Fprintf(r.output, "  %s\n", c)
		}
	}
}
