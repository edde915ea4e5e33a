package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

const (
	metaSettings = "settings"
	metaConnMgr  = "connMgr"
)

// Settings are the resolved options of one invocation: the config file,
// overridden by RESPKV_CLI_* variables, overridden by flags.
type Settings struct {
	ConfigPath string
	Config     *config.CLIConfig
	Addr       string
	Format     output.Format
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "respkv-cli",
		Usage:     "respkv command-line client",
		UsageText: "respkv-cli [global options] [COMMAND [ARG...]]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			ConfigCommand(),
		},
		Metadata: make(map[string]any),
		Before:   before,
		Action:   run,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (host[:port]) or saved connection name",
			Value:   config.Default().Server,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, table, json, yaml",
			Value:   config.Default().Output,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "dial and request timeout",
			Value:   config.Default().Timeout,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			Value:   config.DefaultConfigPath(),
		},
		&cli.BoolFlag{
			Name:  "latency",
			Usage: "print the round-trip time of a one-shot command to stderr",
		},
		&cli.StringFlag{
			Name:  "history",
			Usage: "REPL history file (empty disables)",
			Value: repl.DefaultHistoryFile(),
		},
	}
}

func before(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := make(map[string]string)
	for _, name := range []string{"server", "output"} {
		if c.IsSet(name) {
			flags[name] = c.String(name)
		}
	}
	if c.IsSet("timeout") {
		flags["timeout"] = c.Duration("timeout").String()
	}
	if cfg, err = config.Merge(cfg, config.Environ(), flags); err != nil {
		return err
	}

	c.App.Metadata[metaSettings] = &Settings{
		ConfigPath: path,
		Config:     cfg,
		Addr:       connection.NormalizeAddr(cfg.ResolveServer(cfg.Server)),
		Format:     output.Format(cfg.Output),
	}
	c.App.Metadata[metaConnMgr] = connection.NewManager(cfg.Timeout)
	return nil
}

// GetSettings retrieves the resolved settings from context.
func GetSettings(c *cli.Context) *Settings {
	if s, ok := c.App.Metadata[metaSettings].(*Settings); ok {
		return s
	}
	return &Settings{Config: config.Default(), Addr: connection.NormalizeAddr(""), Format: output.FormatText}
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata[metaConnMgr].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// EnsureConnected connects the manager to the configured server unless it
// already is, and returns the client.
func EnsureConnected(c *cli.Context) (*connection.Client, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		mgr = connection.NewManager(GetSettings(c).Config.Timeout)
		c.App.Metadata[metaConnMgr] = mgr
	}
	if client, err := mgr.Current(); err == nil {
		return client, nil
	}
	if err := mgr.Connect(c.Context, GetSettings(c).Addr); err != nil {
		return nil, err
	}
	return mgr.Current()
}

func run(c *cli.Context) error {
	s := GetSettings(c)
	if c.Args().Present() {
		return oneShot(c, s, c.Args().Slice())
	}

	mgr := GetConnectionManager(c)
	if mgr == nil {
		mgr = connection.NewManager(s.Config.Timeout)
	}
	defer mgr.Disconnect()
	if err := mgr.Connect(c.Context, s.Addr); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Could not connect to %s: %v\n", s.Addr, err)
	}

	r := repl.New(repl.Options{
		Input:     c.App.Reader,
		Output:    c.App.Writer,
		Manager:   mgr,
		Formatter: output.NewFormatter(s.Format),
		History:   repl.NewHistory(c.String("history")),
	})
	return r.Run(c.Context)
}

func oneShot(c *cli.Context, s *Settings, args []string) error {
	client, err := connection.Dial(c.Context, s.Addr, s.Config.Timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	start := time.Now()
	reply, err := client.Do(args...)
	if err != nil {
		return err
	}
	if c.Bool("latency") {
		fmt.Fprintf(c.App.ErrWriter, "(%s)\n", time.Since(start).Round(time.Microsecond))
	}
	return output.NewFormatter(s.Format).Format(c.App.Writer, reply)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
