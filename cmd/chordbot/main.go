// Package main runs the chord sheet Telegram bot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sukalov/chordsheet/internal/bot"
	"github.com/sukalov/chordsheet/internal/bot/client"
	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/config"
	"github.com/sukalov/chordsheet/internal/db"
	"github.com/sukalov/chordsheet/internal/logger"
	"github.com/sukalov/chordsheet/internal/lyrics"
	"github.com/sukalov/chordsheet/internal/redis"
	"github.com/sukalov/chordsheet/internal/songbook"
)

func main() {
	var configPath string
	logConfig := logger.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "chordbot",
		Short:         "Serve chord sheets over Telegram",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logConfig.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger.SetDefault(l)

			return run(configPath)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	logConfig.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	if err := cfg.RequireBot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database.URL, cfg.Database.AuthToken)
	if err != nil {
		return logger.LogWithErr("failed to open database", err)
	}
	defer db.Close(database)

	store := db.NewStore(database)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	var cache songbook.SheetCache
	if cfg.Redis.URL != "" {
		manager, err := redis.NewDBManager(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.TTL.Duration)
		if err != nil {
			return err
		}
		defer manager.Close()
		cache = manager
	} else {
		logger.Info("redis not configured, rendering without cache")
	}

	songs := songbook.NewService(store, cache, newEngine(cfg.Render, logger.Logger()))

	chordBot, err := bot.New("chordbot", cfg.Bot.Token)
	if err != nil {
		return logger.LogWithErr("failed to create bot", err)
	}
	if cfg.Bot.LogChannelID != 0 {
		logger.Init(chordBot, cfg.Bot.LogChannelID)
	}

	handlers := client.NewClientHandlers(songs, lyrics.NewService(), cfg.Bot.Admins)
	logger.Success("chordbot started", "admins", len(cfg.Bot.Admins))

	chordBot.Start(ctx, handlers.Handlers())

	logger.Info("chordbot stopped")
	return nil
}

func newEngine(render config.RenderConfig, l *slog.Logger) *chordpro.Engine {
	opts := []chordpro.Option{chordpro.WithLogger(l)}
	if render.Escape {
		opts = append(opts, chordpro.WithEscaping())
	}
	return chordpro.NewEngine(opts...)
}
