package poller

import (
	"context"
	"sync"
	"time"

	"crewlink-service/pkg/logger"
)

// Task is a running fixed-interval job
type Task struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every runs fn every interval until ctx is cancelled or Stop is called.
// Errors from fn are logged and do not stop the task. interval must be positive.
func Every(ctx context.Context, name string, interval time.Duration, log logger.Logger, fn func(context.Context) error) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Polling stopped", "task", name)
				return
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					log.Error("Error polling", "task", name, "error", err)
				}
			}
		}
	}()

	return t
}

// Name returns the task name used in logs
func (t *Task) Name() string { return t.name }

// Stop cancels the task and waits for the current run to finish. Safe to call twice.
func (t *Task) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has exited
func (t *Task) Done() <-chan struct{} { return t.done }
