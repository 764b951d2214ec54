package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Show the passages retrieved for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := NewApp(ctx)
		defer app.Close(ctx)

		results, err := app.Assistant.Search(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("#", "SCORE", "SOURCE", "PASSAGE")
		for i, r := range results {
			t.Row(
				fmt.Sprint(i+1),
				fmt.Sprintf("%.3f", r.Score),
				fmt.Sprintf("%s #%d", r.Passage.Source, r.Passage.Index),
				oneLine(r.Passage.Content, 80),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
