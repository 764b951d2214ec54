package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/providers/document"
	"github.com/sandevgo/askfolio/internal/service/ui"
)

var extractLimit int

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Print the text extracted from documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		out := cmd.OutOrStdout()
		loader := document.NewLoader()
		for _, path := range args {
			text, err := loader.ExtractText(ctx, path)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.TitleStyle.Render(fmt.Sprintf("%s (%d characters)", filepath.Base(path), len([]rune(text)))))
			fmt.Fprintln(out, head(text, extractLimit))
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().IntVarP(&extractLimit, "limit", "n", 1500, "characters to print per document, 0 for all")
	rootCmd.AddCommand(extractCmd)
}

func head(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
