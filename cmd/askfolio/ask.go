package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/service/memory"
	"github.com/sandevgo/askfolio/pkg/conv"
)

var (
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := NewApp(ctx)
		defer app.Close(ctx)

		reply, _, err := app.Assistant.Ask(ctx, strings.Join(args, " "), memory.Reset())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if askJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(reply)
		}

		fmt.Fprintln(out, conv.MarkdownToText(reply.Text))
		if askSources && len(reply.Sources) > 0 {
			fmt.Fprintln(out)
			for i, p := range reply.Sources {
				fmt.Fprintf(out, "[%d] %s #%d\n", i+1, p.Source, p.Index)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full reply as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "list the passages behind the answer")
	rootCmd.AddCommand(askCmd)
}
