package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRAGConfig_Defaults(t *testing.T) {
	cfg, err := LoadRAGConfig()
	require.NoError(t, err)

	assert.Equal(t, "chars", cfg.ChunkUnit)
	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, 6, cfg.TopK)
	assert.Equal(t, 4, cfg.EmbedConcurrency)
}

func TestRAGConfig_Validate(t *testing.T) {
	valid := RAGConfig{ChunkUnit: "words", ChunkSize: 200, ChunkOverlap: 0, TopK: 1, EmbedConcurrency: 1}

	tests := []struct {
		name    string
		mutate  func(c *RAGConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *RAGConfig) {}},
		{name: "unknown unit", mutate: func(c *RAGConfig) { c.ChunkUnit = "lines" }, wantErr: "unknown chunk unit"},
		{name: "zero size", mutate: func(c *RAGConfig) { c.ChunkSize = 0 }, wantErr: "chunk size"},
		{name: "overlap equals size", mutate: func(c *RAGConfig) { c.ChunkOverlap = 200 }, wantErr: "chunk overlap"},
		{name: "negative overlap", mutate: func(c *RAGConfig) { c.ChunkOverlap = -1 }, wantErr: "chunk overlap"},
		{name: "zero k", mutate: func(c *RAGConfig) { c.TopK = 0 }, wantErr: "retrieval k"},
		{name: "zero concurrency", mutate: func(c *RAGConfig) { c.EmbedConcurrency = 0 }, wantErr: "embed concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRAGConfig_FromEnv(t *testing.T) {
	t.Setenv("CHUNK_UNIT", "words")
	t.Setenv("CHUNK_SIZE", "200")
	t.Setenv("CHUNK_OVERLAP", "20")
	t.Setenv("RETRIEVAL_K", "3")

	cfg, err := LoadRAGConfig()
	require.NoError(t, err)
	assert.Equal(t, "words", cfg.ChunkUnit)
	assert.Equal(t, 200, cfg.ChunkSize)
	assert.Equal(t, 20, cfg.ChunkOverlap)
	assert.Equal(t, 3, cfg.TopK)
}

func TestLoadRAGConfig_RejectsOverlap(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := LoadRAGConfig()
	assert.Error(t, err)
}

func TestLoadAppConfig_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASKFOLIO_RUNTIME_PATH", dir)
	t.Setenv("ASKFOLIO_DOCUMENTS", "resume.pdf,/abs/bio.md,https://jane.dev/about")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.GetRuntimePath())
	assert.Equal(t, []string{filepath.Join(dir, "resume.pdf"), "/abs/bio.md", "https://jane.dev/about"}, cfg.GetDocumentPaths())
	assert.Equal(t, filepath.Join(dir, "profile.yaml"), cfg.GetProfilePath())
	assert.Equal(t, filepath.Join(dir, "askfolio.db"), cfg.GetDatabasePath())
	assert.True(t, cfg.TranscriptEnabled)
	assert.Equal(t, 0, cfg.GetContextWindowSize())
	assert.Equal(t, 1000, cfg.GetMaxSessions())
}

func TestLoadProviderConfig_Defaults(t *testing.T) {
	cfg, err := LoadProviderConfig()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.GetProvider())
	assert.Equal(t, "gpt-3.5-turbo", cfg.GetModel())
	assert.Equal(t, "openai", cfg.GetEmbeddingProvider())
	assert.Equal(t, "text-embedding-ada-002", cfg.GetEmbeddingModel())
	assert.Equal(t, "http://localhost:11434", cfg.GetOllamaBaseURL())
}
