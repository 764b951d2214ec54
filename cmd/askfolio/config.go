package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/service/ui"
	envfmt "github.com/sandevgo/askfolio/pkg/env"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets masked",
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
		provCfg, err := config.LoadProviderConfig()
		if err != nil {
			return err
		}
		ragCfg, err := config.LoadRAGConfig()
		if err != nil {
			return err
		}
		httpCfg := &config.HTTPConfig{}
		if err := env.Parse(httpCfg); err != nil {
			return err
		}

		type section struct {
			title string
			cfg   any
		}
		sections := []section{
			{"App", appCfg},
			{"Provider", provCfg},
			{"RAG", ragCfg},
			{"HTTP", httpCfg},
		}
		if appCfg.IsTelegramSelected() {
			tgCfg := &config.TelegramConfig{}
			if err := env.Parse(tgCfg); err != nil {
				return err
			}
			sections = append(sections, section{"Telegram", tgCfg})
		}

		out := cmd.OutOrStdout()
		for _, s := range sections {
			text, err := envfmt.MarshalEnv(s.cfg, envfmt.WithMaskedSecrets())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.TitleStyle.Render("# "+s.title))
			fmt.Fprint(out, text)
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, ui.DescStyle.Render("# profile: "+appCfg.GetProfilePath()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
