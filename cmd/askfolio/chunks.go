package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/ui"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks [file]...",
	Short: "Chunk documents and show a sample",
	Long:  `Chunks the given files, or the configured documents, and prints the total with the first and third chunk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		ragCfg, err := config.LoadRAGConfig()
		if err != nil {
			return err
		}
		paths := args
		if len(paths) == 0 {
			appCfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			paths = appCfg.GetDocumentPaths()
		}

		passages, err := loadPassages(ctx, paths, ragCfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total chunks: %d (%s, size %d, overlap %d)\n\n", len(passages), ragCfg.ChunkUnit, ragCfg.ChunkSize, ragCfg.ChunkOverlap)
		printChunk(cmd, "First chunk", passages, 0)
		printChunk(cmd, "Third chunk", passages, 2)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chunksCmd)
}

func printChunk(cmd *cobra.Command, label string, passages []core.Passage, i int) {
	if i >= len(passages) {
		return
	}
	p := passages[i]
	fmt.Fprintln(cmd.OutOrStdout(), ui.TitleStyle.Render(fmt.Sprintf("%s (%s #%d)", label, p.Source, p.Index)))
	fmt.Fprintln(cmd.OutOrStdout(), p.Content)
	fmt.Fprintln(cmd.OutOrStdout())
}
