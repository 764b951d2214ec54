package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askfolio/pkg/log"
)

type AppConfig struct {
	RuntimePath string   `env:"ASKFOLIO_RUNTIME_PATH" envDefault:".askfolio"`
	Documents   []string `env:"ASKFOLIO_DOCUMENTS" envSeparator:"," envDefault:"resume.pdf,profile.pdf"`
	ProfileFile string   `env:"ASKFOLIO_PROFILE" envDefault:"profile.yaml"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Context Management. Zero renders the whole conversation into prompts.
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"0"`

	// MaxSessions caps in-memory chat sessions; the least recently used goes first.
	MaxSessions int `env:"MAX_SESSIONS" envDefault:"1000"`

	TranscriptEnabled bool `env:"TRANSCRIPT_ENABLED" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

// GetDocumentPaths resolves relative document names against the runtime directory.
func (c AppConfig) GetDocumentPaths() []string {
	paths := make([]string, 0, len(c.Documents))
	for _, d := range c.Documents {
		paths = append(paths, c.resolve(d))
	}
	return paths
}

func (c AppConfig) GetProfilePath() string {
	return c.resolve(c.ProfileFile)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "askfolio.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c AppConfig) GetMaxSessions() int {
	return c.MaxSessions
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

// resolve leaves absolute paths and URLs alone.
func (c AppConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || strings.Contains(name, "://") {
		return name
	}
	return filepath.Join(c.RuntimePath, name)
}
