package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"

	"github.com/sandevgo/askfolio/internal/core"
)

type RAGConfig struct {
	ChunkUnit        string `env:"CHUNK_UNIT" envDefault:"chars"`
	ChunkSize        int    `env:"CHUNK_SIZE" envDefault:"800"`
	ChunkOverlap     int    `env:"CHUNK_OVERLAP" envDefault:"100"`
	TopK             int    `env:"RETRIEVAL_K" envDefault:"6"`
	EmbedConcurrency int    `env:"EMBED_CONCURRENCY" envDefault:"4"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg, err := LoadRAGConfig()
	if err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}

func LoadRAGConfig() (*RAGConfig, error) {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c RAGConfig) Validate() error {
	if err := core.ValidateChunking(c.ChunkUnit, c.ChunkSize, c.ChunkOverlap); err != nil {
		return err
	}
	if c.TopK < 1 {
		return fmt.Errorf("retrieval k must be at least 1, got %d", c.TopK)
	}
	if c.EmbedConcurrency < 1 {
		return fmt.Errorf("embed concurrency must be at least 1, got %d", c.EmbedConcurrency)
	}
	return nil
}
