package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandevgo/askfolio/pkg/log"
)

// Janitor periodically drops idle sessions from a Manager.
type Janitor struct {
	manager  *Manager
	interval time.Duration
	ttl      time.Duration
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func NewJanitor(m *Manager, interval, ttl time.Duration) *Janitor {
	return &Janitor{
		manager:  m,
		interval: interval,
		ttl:      ttl,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	if !j.started.CompareAndSwap(false, true) {
		return nil
	}
	defer close(j.done)
	logger := log.FromCtx(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.stop:
			return nil
		case <-ticker.C:
			if n := j.manager.Prune(j.ttl); n > 0 {
				logger.Debug().Int("pruned", n).Int("active", j.manager.Len()).Msg("dropped idle sessions")
			}
		}
	}
}

// Shutdown is safe to call more than once and before Start.
func (j *Janitor) Shutdown(ctx context.Context) error {
	j.stopOnce.Do(func() { close(j.stop) })
	if !j.started.Load() {
		return nil
	}
	select {
	case <-j.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
