package assistant

import (
	"context"
	"fmt"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/index"
)

type Result = index.Result

type Searcher interface {
	Search(query []float32, k int) ([]Result, error)
}

// Retriever embeds a query and looks up its nearest passages. Nothing is cached.
type Retriever struct {
	embedder core.Embedder
	searcher Searcher
	k        int
}

func NewRetriever(embedder core.Embedder, searcher Searcher, k int) *Retriever {
	if k < 1 {
		k = index.DefaultK
	}
	return &Retriever{embedder: embedder, searcher: searcher, k: k}
}

func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Result, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %w", core.ErrEmbeddingFailed, err)
	}
	results, err := r.searcher.Search(vec, r.k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

func (r *Retriever) K() int {
	return r.k
}
