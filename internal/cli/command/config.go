package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/respkv/internal/cli/config"
)

const setDescription = `KEY is server, output, timeout or connections.<name>.
An empty value for connections.<name> removes the connection.`

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
			{
				Name:        "set",
				Usage:       "Set a value in the configuration file",
				ArgsUsage:   "KEY VALUE",
				Description: setDescription,
				Action:      configSet,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s := GetSettings(c)
	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(s.Config); err != nil {
		return err
	}
	return enc.Close()
}

func configPath(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, GetSettings(c).ConfigPath)
	return err
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set KEY VALUE")
	}
	path := GetSettings(c).ConfigPath

	// Only the file's own values are written back, not env or flag overrides.
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Set(cfg, c.Args().Get(0), c.Args().Get(1)); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(c.App.Writer, "%s updated\n", path)
	return nil
}
