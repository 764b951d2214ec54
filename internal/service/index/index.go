package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
)

const (
	DefaultK           = 6
	DefaultConcurrency = 4
)

var ErrInvalidK = errors.New("k must be at least 1")

type Options struct {
	// Concurrency bounds parallel Embed calls during Build.
	Concurrency int
}

type Result struct {
	Passage core.Passage
	Score   float32
}

// Index is an in-memory cosine index. It is immutable after Build and safe
// for concurrent searches.
type Index struct {
	items []core.EmbeddedPassage
	norms []float64
	dim   int
}

// Build embeds every passage and indexes them all, or returns nil.
func Build(ctx context.Context, embedder core.Embedder, passages []core.Passage, opts Options) (*Index, error) {
	if len(passages) == 0 {
		return nil, core.ErrEmptyCorpus
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}

	logger := log.FromCtx(ctx)
	logger.Info().Int("passages", len(passages)).Msg("building index")

	items := make([]core.EmbeddedPassage, len(passages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, p := range passages {
		g.Go(func() error {
			vec, err := embedder.Embed(gctx, p.Content)
			if err != nil {
				return fmt.Errorf("%w: passage %d of %s: %w", core.ErrEmbeddingFailed, p.Index, p.Source, err)
			}
			if len(vec) == 0 {
				return fmt.Errorf("%w: passage %d of %s: zero-length vector", core.ErrEmbeddingFailed, p.Index, p.Source)
			}
			items[i] = core.EmbeddedPassage{Passage: p, Vector: vec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{
		items: items,
		norms: make([]float64, len(items)),
		dim:   len(items[0].Vector),
	}
	for i, it := range items {
		if len(it.Vector) != idx.dim {
			return nil, fmt.Errorf("%w: mixed dimensions %d and %d", core.ErrEmbeddingFailed, idx.dim, len(it.Vector))
		}
		idx.norms[i] = norm(it.Vector)
	}

	logger.Info().Int("passages", len(items)).Int("dim", idx.dim).Msg("index ready")
	return idx, nil
}

func (x *Index) Len() int {
	return len(x.items)
}

func (x *Index) Dim() int {
	return x.dim
}

// Search returns up to k passages by descending cosine similarity. Equal
// scores keep insertion order. k above Len is clamped.
func (x *Index) Search(query []float32, k int) ([]Result, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", core.ErrEmbeddingFailed, len(query), x.dim)
	}

	qn := norm(query)
	results := make([]Result, len(x.items))
	for i, it := range x.items {
		results[i] = Result{
			Passage: it.Passage,
			Score:   cosine(query, qn, it.Vector, x.norms[i]),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[:min(k, len(results))], nil
}

// Passages lists indexed passages in insertion order.
func (x *Index) Passages() []core.Passage {
	out := make([]core.Passage, len(x.items))
	for i, it := range x.items {
		out[i] = it.Passage
	}
	return out
}

func norm(v []float32) float64 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	return math.Sqrt(sum)
}

// cosine is zero when either vector has no magnitude.
func cosine(a []float32, an float64, b []float32, bn float64) float32 {
	if an == 0 || bn == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot / (an * bn))
}
