package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
	"crewlink-service/internal/infrastructure/poller"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"
	"crewlink-service/templates"
)

// Probability bands for a single draw. Evaluated in order; the first match wins.
const (
	cancelThreshold     = 0.05
	delayThreshold      = 0.20
	boardingThreshold   = 0.40
	gateChangeThreshold = 0.95

	delayOffset = 45 * time.Minute
)

// TickResult describes what a single tick did
type TickResult struct {
	FlightNumber   string
	PreviousStatus entity.FlightState
	Status         entity.FlightState
	PreviousGate   string
	Gate           string
	Notified       bool
}

// Evaluated reports whether a flight was picked this tick
func (r TickResult) Evaluated() bool { return r.FlightNumber != "" }

// StatusChanged reports whether the picked flight changed status
func (r TickResult) StatusChanged() bool { return r.Status != r.PreviousStatus }

// GateChanged reports whether the picked flight moved gate
func (r TickResult) GateChanged() bool { return r.Gate != r.PreviousGate }

// FlightSimulator owns the flight status registry and advances it one
// randomly chosen flight at a time. It is the only writer of the registry
// and of alert notifications.
type FlightSimulator struct {
	flights       repository.FlightStatusRepository
	notifications repository.NotificationRepository
	clock         utils.Clock
	rng           utils.Random
	logger        logger.Logger
	metrics       *metrics.Metrics

	mu sync.Mutex
}

// NewFlightSimulator creates a new flight simulator
func NewFlightSimulator(
	flights repository.FlightStatusRepository,
	notifications repository.NotificationRepository,
	clock utils.Clock,
	rng utils.Random,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FlightSimulator {
	return &FlightSimulator{
		flights:       flights,
		notifications: notifications,
		clock:         clock,
		rng:           rng,
		logger:        logger,
		metrics:       metrics,
	}
}

// GetStatus returns a copy of the flight's current status
func (s *FlightSimulator) GetStatus(ctx context.Context, flightNumber string) (*entity.FlightStatus, error) {
	return s.flights.FindByFlightNumber(ctx, flightNumber)
}

// ListStatuses returns copies of every flight ordered by flight number
func (s *FlightSimulator) ListStatuses(ctx context.Context) ([]*entity.FlightStatus, error) {
	return s.flights.List(ctx)
}

// Tick evaluates exactly one randomly selected non-terminal flight.
// With no candidates it returns a zero TickResult.
func (s *FlightSimulator) Tick(ctx context.Context) (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		s.metrics.FlightTicks.Inc()
		s.metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()

	all, err := s.flights.List(ctx)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("flight_tick").Inc()
		return TickResult{}, fmt.Errorf("failed to list flights: %w", err)
	}

	candidates := all[:0]
	for _, f := range all {
		if !f.IsTerminal() {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return TickResult{}, nil
	}

	flight := candidates[s.rng.IntN(len(candidates))]
	result := TickResult{
		FlightNumber:   flight.FlightNumber,
		PreviousStatus: flight.Status,
		PreviousGate:   flight.Gate,
	}

	s.advance(flight)

	result.Status = flight.Status
	result.Gate = flight.Gate

	if !result.StatusChanged() && !result.GateChanged() {
		return result, nil
	}

	if err := s.flights.Save(ctx, flight); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("flight_save").Inc()
		return TickResult{}, fmt.Errorf("failed to save flight %s: %w", flight.FlightNumber, err)
	}

	if result.StatusChanged() {
		s.metrics.StatusTransitions.WithLabelValues(string(result.PreviousStatus), string(result.Status)).Inc()
		s.logger.Info("Flight status changed",
			"flightNumber", flight.FlightNumber,
			"from", result.PreviousStatus,
			"to", result.Status,
			"remarks", flight.Remarks)
	}
	if result.GateChanged() {
		s.metrics.GateChanges.Inc()
		s.logger.Info("Flight gate changed",
			"flightNumber", flight.FlightNumber,
			"from", result.PreviousGate,
			"to", result.Gate)
	}

	if result.StatusChanged() && (flight.Status == entity.FlightDelayed || flight.Status == entity.FlightCancelled) {
		alert := templates.NewFlightAlert(flight, s.clock.Now())
		if err := s.notifications.Prepend(ctx, alert); err != nil {
			s.metrics.ErrorsCount.WithLabelValues("flight_alert").Inc()
			return result, fmt.Errorf("failed to publish alert for %s: %w", flight.FlightNumber, err)
		}
		s.metrics.NotificationsEmitted.WithLabelValues(string(alert.Type)).Inc()
		result.Notified = true
	}

	return result, nil
}

// advance applies at most one transition to flight from a single draw
func (s *FlightSimulator) advance(flight *entity.FlightStatus) {
	choice := s.rng.Float64()

	switch {
	case choice < cancelThreshold && flight.Status == entity.FlightOnTime:
		flight.Status = entity.FlightCancelled
		flight.Remarks = templates.CancelledRemark

	case choice < delayThreshold && flight.Status == entity.FlightOnTime:
		etd := flight.DepartureTime.Add(delayOffset)
		flight.Status = entity.FlightDelayed
		flight.EstimatedDepartureTime = etd
		flight.Remarks = templates.DelayedRemark(etd)

	case choice < boardingThreshold && (flight.Status == entity.FlightOnTime || flight.Status == entity.FlightDelayed):
		flight.Status = entity.FlightBoarding
		flight.Remarks = templates.BoardingRemark(flight.Gate)

	case choice > gateChangeThreshold && flight.Gate != "":
		newGate := reassignGate(flight.Gate, s.rng)
		if newGate != flight.Gate {
			flight.Gate = newGate
			flight.Remarks = templates.GateChangeRemark(newGate)
		}
	}
}

// reassignGate keeps the gate's leading letter and draws a suffix in [10,19]
func reassignGate(gate string, rng utils.Random) string {
	prefix := []rune(gate)[0]
	return fmt.Sprintf("%c%d", prefix, 10+rng.IntN(10))
}

// Start ticks on a fixed interval until ctx is cancelled or the task is stopped
func (s *FlightSimulator) Start(ctx context.Context, interval time.Duration) *poller.Task {
	return poller.Every(ctx, "flight-tick", interval, s.logger, func(ctx context.Context) error {
		_, err := s.Tick(ctx)
		return err
	})
}

// Run ticks on a fixed interval and blocks until ctx is cancelled
func (s *FlightSimulator) Run(ctx context.Context, interval time.Duration) {
	<-s.Start(ctx, interval).Done()
	s.logger.Info("Flight simulator stopped")
}
