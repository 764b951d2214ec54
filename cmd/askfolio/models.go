package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/providers/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models offered by the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		provCfg, err := config.LoadProviderConfig()
		if err != nil {
			return err
		}

		p, err := llm.NewProvider(ctx, provCfg, provCfg.MaxRetries)
		if err != nil {
			return err
		}
		lister, ok := p.(core.ModelLister)
		if !ok {
			return llm.ErrModelListingUnsupported
		}
		models, err := lister.Models(ctx)
		if errors.Is(err, llm.ErrModelListingUnsupported) {
			return fmt.Errorf("%s: %w", provCfg.Provider, err)
		}
		if err != nil {
			return err
		}
		sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("ID", "NAME", "CONTEXT")
		for _, m := range models {
			ctxLen := ""
			if m.ContextLength > 0 {
				ctxLen = fmt.Sprint(m.ContextLength)
			}
			t.Row(m.ID, m.Name, ctxLen)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
