package srv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownServices_ReverseOrder(t *testing.T) {
	var order []int
	services := []Service{
		NewCleanup(func() error { order = append(order, 1); return nil }),
		NewCleanup(func() error { order = append(order, 2); return errors.New("ignored") }),
		NewCleanup(func() error { order = append(order, 3); return nil }),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ShutdownServices(ctx, services)

	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestNewCleanup_NilFunc(t *testing.T) {
	s := NewCleanup(nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestStopServices_DoesNotWait(t *testing.T) {
	stopped := false
	StopServices(context.Background(), []Service{
		NewCleanup(func() error { stopped = true; return nil }),
	})
	assert.True(t, stopped)
}
