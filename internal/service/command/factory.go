package command

import (
	"github.com/sandevgo/askfolio/internal/core"
)

func NewCommands(
	sessions core.SessionStore,
	cfg core.ProviderConfig,
	models core.ModelLister,
) []core.Command {
	return []core.Command{
		NewResetCommand(sessions),
		NewSourcesCommand(sessions),
		NewModelCommand(cfg, models),
	}
}
