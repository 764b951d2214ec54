package document

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/askfolio/internal/core"
)

type Document struct {
	Path string
	Name string
	Text string
}

// Corpus is the fixed, ordered set of documents answers are grounded on.
type Corpus struct {
	source core.DocumentSource
	paths  []string
}

func NewCorpus(source core.DocumentSource, paths []string) *Corpus {
	return &Corpus{source: source, paths: paths}
}

// Load extracts every document concurrently and returns them in configured
// order. The first failure aborts the whole load.
func (c *Corpus) Load(ctx context.Context) ([]Document, error) {
	docs := make([]Document, len(c.paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range c.paths {
		g.Go(func() error {
			text, err := c.source.ExtractText(ctx, path)
			if err != nil {
				return err
			}
			docs[i] = Document{Path: path, Name: filepath.Base(path), Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
