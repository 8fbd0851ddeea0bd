// Command client plays against the four-in-a-row server over its WebSocket transport.
//
//	client reset Y
//	client drop A
//	client cturn
//	client board
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "send command frames to a four-in-a-row server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   "ws://localhost:9091/ws",
				Usage:   "WebSocket endpoint of the server",
				Sources: cli.EnvVars("FOURINAROW_ADDR"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 2 * time.Second,
				Usage: "how long to wait for a response",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "reset",
				Usage:     "start a new game holding yellow (Y) or red (R)",
				ArgsUsage: "Y|R",
				Action:    sendArg("RESET "),
			},
			{
				Name:      "drop",
				Usage:     "drop a chip into a column",
				ArgsUsage: "A..H",
				Action:    sendArg("DROPC "),
			},
			{
				Name:   "cturn",
				Usage:  "let the computer move",
				Action: sendFrame("CTURN"),
			},
			{
				Name:   "board",
				Usage:  "print the board",
				Action: sendFrame("BOARD"),
			},
			{
				Name:      "raw",
				Usage:     "send frames exactly as given",
				ArgsUsage: "FRAME...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return run(ctx, cmd, cmd.Args().Slice()...)
				},
			},
		},
	}
}

func sendFrame(frame string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return run(ctx, cmd, frame)
	}
}

func sendArg(prefix string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return fmt.Errorf("expected one argument, got %d", cmd.Args().Len())
		}
		return run(ctx, cmd, prefix+strings.ToUpper(cmd.Args().First()))
	}
}

func run(ctx context.Context, cmd *cli.Command, frames ...string) error {
	client := &Client{
		Addr:    cmd.String("addr"),
		Timeout: cmd.Duration("timeout"),
		Out:     os.Stdout,
	}
	return client.Send(ctx, frames...)
}
