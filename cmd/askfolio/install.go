package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/service/installer"
	"github.com/sandevgo/askfolio/pkg/log"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime directory, .env and profile",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		runtimePath := config.GetRuntimePath()
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		// Load the newly created .env file so later config parsing sees the values
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Put your documents there, then run 'askfolio chat' or 'askfolio serve'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
