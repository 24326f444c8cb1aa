package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/streamgate/cmd/app/commands"
	"github.com/allisson/streamgate/internal/app"
	"github.com/allisson/streamgate/internal/config"
)

func getPlaybackCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sign-url",
			Usage: "Sign an arbitrary HLS path",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "path",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Path to sign (e.g. /hls/intro/master.m3u8)",
				},
				&cli.DurationFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Usage:   "Lifetime of the URL (defaults to PLAYBACK_TTL_SECONDS)",
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

				signer, err := container.TokenSigner()
				if err != nil {
					return fmt.Errorf("failed to initialize token signer: %w", err)
				}

				ttl := cmd.Duration("ttl")
				if ttl == 0 {
					ttl = cfg.PlaybackTTL
				}

				return commands.RunSignURL(
					ctx,
					signer,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("path"),
					ttl,
					cfg.PublicBaseURL,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "sign-video",
			Usage: "Sign the master playlist of a packaged video",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Video id under MEDIA_ROOT/hls",
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

				playbackUseCase, err := container.PlaybackUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize playback use case: %w", err)
				}

				return commands.RunSignVideo(
					ctx,
					playbackUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("format"),
				)
			},
		},
	}
}

