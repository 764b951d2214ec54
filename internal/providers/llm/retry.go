package llm

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
	"github.com/sandevgo/askfolio/pkg/retry"
)

// Retrying retries transient provider failures. Client errors other than 429 fail fast.
type Retrying struct {
	core.AIProvider
	retrier *retry.Retrier
}

func NewRetrying(p core.AIProvider, retrier *retry.Retrier) *Retrying {
	return &Retrying{AIProvider: p, retrier: retrier}
}

func (r *Retrying) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	var msg core.Message
	err := r.retrier.Do(ctx, func() error {
		var err error
		msg, err = r.AIProvider.Chat(ctx, history)
		return classify(ctx, err)
	})
	return msg, err
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := r.retrier.Do(ctx, func() error {
		var err error
		text, err = r.AIProvider.Generate(ctx, prompt)
		return classify(ctx, err)
	})
	return text, err
}

func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) &&
		httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 &&
		httpErr.StatusCode != http.StatusTooManyRequests {
		return retry.Permanent(err)
	}
	log.FromCtx(ctx).Warn().Err(err).Msg("llm call failed, retrying")
	return err
}

// Models passes through to the wrapped provider when it can list models.
func (r *Retrying) Models(ctx context.Context) ([]core.Model, error) {
	lister, ok := r.AIProvider.(core.ModelLister)
	if !ok {
		return nil, ErrModelListingUnsupported
	}
	return lister.Models(ctx)
}

func (r *Retrying) Close() error {
	if c, ok := r.AIProvider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
