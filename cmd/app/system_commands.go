package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/streamgate/cmd/app/commands"
	"github.com/allisson/streamgate/internal/app"
	"github.com/allisson/streamgate/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server, the metrics server and the expiry sweeper",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "encrypt-secret",
			Usage: "Encrypt a stream secret for STREAM_SECRET_CIPHERTEXT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Keeper URI (e.g. base64key://..., hashivault://streamgate)",
				},
				&cli.StringFlag{
					Name:    "secret",
					Aliases: []string{"s"},
					Usage:   "Secret to encrypt; read from stdin when empty",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptSecret(
					ctx,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("kms-key-uri"),
					cmd.String("secret"),
				)
			},
		},
	}
}
