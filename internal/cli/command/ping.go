package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
)

// PingCommand returns the ping subcommand.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check that the server answers",
		ArgsUsage: "[MESSAGE]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "number of pings",
				Value:   1,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "wait between pings",
				Value: time.Second,
			},
		},
		Action: ping,
	}
}

func ping(c *cli.Context) error {
	count := c.Int("count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	defer GetConnectionManager(c).Disconnect()

	args := append([]string{"PING"}, c.Args().Slice()...)
	formatter := output.NewFormatter(GetSettings(c).Format)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-c.Context.Done():
				return nil
			case <-time.After(c.Duration("interval")):
			}
		}
		start := time.Now()
		reply, err := client.Do(args...)
		if err != nil {
			return err
		}
		if err := formatter.Format(c.App.Writer, reply); err != nil {
			return err
		}
		if c.Bool("latency") {
			fmt.Fprintf(c.App.ErrWriter, "(%s)\n", time.Since(start).Round(time.Microsecond))
		}
	}
	return nil
}
