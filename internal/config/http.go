package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askfolio/pkg/log"
)

type HTTPConfig struct {
	Addr           string   `env:"HTTP_ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
