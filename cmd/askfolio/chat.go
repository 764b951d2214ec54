package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/transport/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	Long:  `Opens a terminal chat with one conversation. Logs go to askfolio.log in the runtime directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// The TUI owns the terminal, so logs go to a file.
		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return err
		}
		logFile, err := os.OpenFile(filepath.Join(runtimePath, "askfolio.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer logFile.Close()

		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, logFile)
		defer flushLog()

		fmt.Fprintln(os.Stderr, "Indexing documents...")
		app := NewApp(ctx)
		defer app.Close(ctx)

		title := fmt.Sprintf("Ask about %s", app.Profile.Name)
		return tui.Run(ctx, tui.New(ctx, app.Sessions, app.Router, title))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
