package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/askfolio/internal/core"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	models    core.ModelLister
	formatter *ResponseFormatter
}

// NewModelCommand shows the configured model. models may be nil when the
// provider cannot enumerate.
func NewModelCommand(cfg core.ProviderConfig, models core.ModelLister) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		models:    models,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the current model, or list available ones"
}

func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider()),
			c.formatter.Label("Model", c.cfg.GetModel()),
			c.formatter.Usage("/model list"),
		), nil
	}

	if args[0] != "list" {
		return "", fmt.Errorf("unknown argument %q", args[0])
	}
	if c.models == nil {
		return "", fmt.Errorf("provider %s cannot list models", c.cfg.GetProvider())
	}

	models, err := c.models.Models(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}
	items := make([]string, 0, len(models))
	for _, m := range models {
		items = append(items, m.ID)
	}
	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Models (%d)", len(items))),
		c.formatter.List(items),
	), nil
}
