package index

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/askfolio/internal/core"
)

// mapEmbedder returns fixed vectors per text.
type mapEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	errOn   string
	calls   int
}

func (m *mapEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if text == m.errOn {
		return nil, errors.New("provider down")
	}
	v, ok := m.vectors[text]
	if !ok {
		return []float32{0, 0, 1}, nil
	}
	return v, nil
}

func passages(contents ...string) []core.Passage {
	out := make([]core.Passage, len(contents))
	for i, c := range contents {
		out[i] = core.Passage{Content: c, Source: "test", Index: i}
	}
	return out
}

func contents(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Passage.Content
	}
	return out
}

func TestBuild_EmptyCorpus(t *testing.T) {
	idx, err := Build(context.Background(), &mapEmbedder{}, nil, Options{})
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
	assert.Nil(t, idx)
}

func TestBuild_Atomic(t *testing.T) {
	e := &mapEmbedder{errOn: "b"}
	idx, err := Build(context.Background(), e, passages("a", "b", "c"), Options{Concurrency: 1})
	assert.ErrorIs(t, err, core.ErrEmbeddingFailed)
	assert.Nil(t, idx)
}

func TestBuild_MalformedVectors(t *testing.T) {
	t.Run("zero length", func(t *testing.T) {
		e := &mapEmbedder{vectors: map[string][]float32{"a": {}}}
		idx, err := Build(context.Background(), e, passages("a"), Options{})
		assert.ErrorIs(t, err, core.ErrEmbeddingFailed)
		assert.Nil(t, idx)
	})

	t.Run("mixed dimensions", func(t *testing.T) {
		e := &mapEmbedder{vectors: map[string][]float32{"a": {1, 0}, "b": {1, 0, 0}}}
		idx, err := Build(context.Background(), e, passages("a", "b"), Options{})
		assert.ErrorIs(t, err, core.ErrEmbeddingFailed)
		assert.Nil(t, idx)
	})
}

func TestBuild_EmbedsEveryPassage(t *testing.T) {
	e := &mapEmbedder{}
	idx, err := Build(context.Background(), e, passages("a", "b", "c", "d", "e"), Options{Concurrency: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, idx.Len())
	assert.Equal(t, 3, idx.Dim())
	assert.Equal(t, 5, e.calls)
	assert.Equal(t, passages("a", "b", "c", "d", "e"), idx.Passages())
}

func TestSearch_OrderAndBound(t *testing.T) {
	e := &mapEmbedder{vectors: map[string][]float32{
		"far":    {0, 1},
		"near":   {1, 0.1},
		"middle": {1, 1},
	}}
	idx, err := Build(context.Background(), e, passages("far", "near", "middle"), Options{})
	require.NoError(t, err)

	results, err := idx.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "middle"}, contents(results))
	assert.Greater(t, results[0].Score, results[1].Score)

	results, err = idx.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "middle", "far"}, contents(results))
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	e := &mapEmbedder{vectors: map[string][]float32{
		"first":  {1, 0},
		"second": {2, 0},
		"third":  {3, 0},
	}}
	idx, err := Build(context.Background(), e, passages("first", "second", "third"), Options{Concurrency: 3})
	require.NoError(t, err)

	results, err := idx.Search([]float32{5, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, contents(results))
}

func TestSearch_InvalidInput(t *testing.T) {
	idx, err := Build(context.Background(), &mapEmbedder{}, passages("a"), Options{})
	require.NoError(t, err)

	_, err = idx.Search([]float32{0, 0, 1}, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = idx.Search([]float32{1, 0}, 1)
	assert.ErrorIs(t, err, core.ErrEmbeddingFailed)
}

func TestSearch_ZeroQuery(t *testing.T) {
	idx, err := Build(context.Background(), &mapEmbedder{}, passages("a", "b"), Options{})
	require.NoError(t, err)

	results, err := idx.Search([]float32{0, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, contents(results))
	assert.Zero(t, results[0].Score)
}
