package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewlink-service/pkg/logger"
)

func TestEvery_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	task := Every(context.Background(), "count", 2*time.Millisecond, logger.NewNopLogger(), func(context.Context) error {
		runs.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	task.Stop()
	task.Stop()

	stopped := runs.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
	assert.Equal(t, "count", task.Name())
}

func TestEvery_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Every(ctx, "ctx", time.Millisecond, logger.NewNopLogger(), func(context.Context) error { return nil })

	cancel()
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after context cancel")
	}
}

func TestEvery_ErrorsDoNotStopTask(t *testing.T) {
	var runs atomic.Int32
	task := Every(context.Background(), "failing", time.Millisecond, logger.NewNopLogger(), func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})
	defer task.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
}
