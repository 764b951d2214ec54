package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/service/session"
	"github.com/sandevgo/askfolio/internal/transport/api"
	"github.com/sandevgo/askfolio/internal/transport/telegram"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/srv"
)

const (
	sessionPruneInterval = 10 * time.Minute
	sessionTTL           = 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, when enabled, the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting askfolio")

		// Define services
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("askfolio has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// NewServices lists services in start order; shutdown runs in reverse.
func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	app := NewApp(ctx)

	services := append([]srv.Service{}, app.Cleanups...)
	services = append(services, session.NewJanitor(app.Sessions, sessionPruneInterval, sessionTTL))

	httpCfg := config.NewHTTPConfig(ctx)
	services = append(services, api.NewServer(httpCfg, app.Assistant, app.Sessions))

	// Telegram Bot
	if app.AppCfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, app.Sessions, app.Router, app.Profile.Name)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}
