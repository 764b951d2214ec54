package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/retry"
)

const defaultEmbedTimeout = 30 * time.Second

// OpenAIEmbedder calls the OpenAI-style /v1/embeddings endpoint. OpenAI,
// Ollama and most self-hosted servers speak it.
type OpenAIEmbedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

func NewOpenAIEmbedder(baseURL, apiKey, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client:  &http.Client{},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		timeout: defaultEmbedTimeout,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	log.FromCtx(ctx).Debug().Str("model", e.model).Int("length", len(text)).Msg("embedding text")

	data, err := json.Marshal(map[string]any{
		"model": e.model,
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Permanent(err)
		}
		return nil, err
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, errors.New("empty embedding received")
	}
	return result.Data[0].Embedding, nil
}

// RetryingEmbedder retries transient embedding failures.
type RetryingEmbedder struct {
	core.Embedder
	retrier *retry.Retrier
}

func NewRetryingEmbedder(e core.Embedder, retrier *retry.Retrier) *RetryingEmbedder {
	return &RetryingEmbedder{Embedder: e, retrier: retrier}
}

func (r *RetryingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := r.retrier.Do(ctx, func() error {
		var err error
		vec, err = r.Embedder.Embed(ctx, text)
		return err
	})
	return vec, err
}

func (r *RetryingEmbedder) Close() error {
	if c, ok := r.Embedder.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
