package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	dbsync "github.com/jhoicas/adoptease-api/internal/application/sync"
	"github.com/jhoicas/adoptease-api/pkg/logger"
)

func TestWatcher_ReintentaYSeDetiene(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{fails: 2}
	w := dbsync.NewWatcher(runner, 5*time.Millisecond, time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return runner.calls.Load() >= 4 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("el watcher no se detuvo al cancelar el contexto")
	}
}

func TestWatcher_DelayFirst(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{}
	w := dbsync.NewWatcher(runner, time.Hour, 0, nil).DelayFirst()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, w.Run(ctx))
	assert.Zero(t, runner.calls.Load())
}
