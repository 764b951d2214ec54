package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/storage/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the latest recorded exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		db, err := openDB(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := sqlite.NewTranscript(db).GetEntries(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No exchanges recorded yet.")
			return nil
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("TIME", "SESSION", "ROUTE", "QUESTION", "ANSWER")
		for _, e := range entries {
			t.Row(
				e.CreatedAt.Local().Format("2006-01-02 15:04"),
				oneLine(e.SessionID, 16),
				e.Route,
				oneLine(e.Question, 40),
				oneLine(e.Answer, 60),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of exchanges to show")
	rootCmd.AddCommand(historyCmd)
}
