package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zkvault/zkvault/cmd/app/commands"
	"github.com/zkvault/zkvault/internal/app"
	"github.com/zkvault/zkvault/internal/config"
)

func getMaintenanceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-expired",
			Usage: "Delete expired refresh tokens and expired secrets",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many rows would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sw, err := container.Sweeper()
				if err != nil {
					return err
				}

				return commands.RunCleanExpired(
					ctx,
					sw,
					container.Logger(),
					cmd.Root().Writer,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
