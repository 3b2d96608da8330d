package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/zkvault/zkvault/cmd/app/commands"
	"github.com/zkvault/zkvault/internal/app"
	"github.com/zkvault/zkvault/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Serve the vault API, plus the metrics endpoint and expiry sweeper when enabled",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending schema migrations for the configured DB_DRIVER",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Value:   "migrations",
					Usage:   "Directory holding the postgresql/ and mysql/ migration sets",
					Sources: cli.EnvVars("MIGRATIONS_DIR"),
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(
					container.Logger(),
					cfg.DBDriver,
					cfg.DBConnectionString,
					cmd.String("dir"),
				)
			},
		},
		{
			Name:  "version",
			Usage: "Print the build version",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				_, err := cmd.Root().Writer.Write([]byte(version + "\n"))
				return err
			},
		},
	}
}
