package usecase

import (
	"context"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
)

// FlightStatusWatcher polls one flight and reports only when its snapshot changed
type FlightStatusWatcher struct {
	sim          *FlightSimulator
	flightNumber string
	onChange     func(entity.FlightStatus)
	logger       logger.Logger

	mu   sync.Mutex
	last *entity.FlightStatus
}

// NewFlightStatusWatcher creates a watcher for flightNumber. onChange may be nil.
func NewFlightStatusWatcher(sim *FlightSimulator, flightNumber string, onChange func(entity.FlightStatus), logger logger.Logger) *FlightStatusWatcher {
	return &FlightStatusWatcher{
		sim:          sim,
		flightNumber: flightNumber,
		onChange:     onChange,
		logger:       logger.With("flightNumber", flightNumber),
	}
}

// Poll reads the flight once. The first successful read always counts as a change.
func (w *FlightStatusWatcher) Poll(ctx context.Context) (entity.FlightStatus, bool, error) {
	current, err := w.sim.GetStatus(ctx, w.flightNumber)
	if err != nil {
		return entity.FlightStatus{}, false, err
	}

	w.mu.Lock()
	changed := w.last == nil || *w.last != *current
	if changed {
		w.last = current
	}
	w.mu.Unlock()

	if changed {
		w.logger.Debug("Watched flight changed", "status", current.Status, "gate", current.Gate)
		if w.onChange != nil {
			w.onChange(*current)
		}
	}
	return *current, changed, nil
}

// UnreadCountWatcher polls the unread badge count and mirrors it into the gauge
type UnreadCountWatcher struct {
	feed     *NotificationFeed
	metrics  *metrics.Metrics
	onChange func(int)

	mu   sync.Mutex
	last int
	seen bool
}

// NewUnreadCountWatcher creates a new unread count watcher. onChange may be nil.
func NewUnreadCountWatcher(feed *NotificationFeed, metrics *metrics.Metrics, onChange func(int)) *UnreadCountWatcher {
	return &UnreadCountWatcher{
		feed:     feed,
		metrics:  metrics,
		onChange: onChange,
	}
}

// Poll reads the unread count and reports whether it moved since the last poll
func (w *UnreadCountWatcher) Poll(ctx context.Context) (int, bool, error) {
	count, err := w.feed.UnreadCount(ctx)
	if err != nil {
		w.metrics.ErrorsCount.WithLabelValues("unread_poll").Inc()
		return 0, false, err
	}
	w.metrics.UnreadNotifications.Set(float64(count))

	w.mu.Lock()
	changed := !w.seen || w.last != count
	w.last, w.seen = count, true
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(count)
	}
	return count, changed, nil
}
