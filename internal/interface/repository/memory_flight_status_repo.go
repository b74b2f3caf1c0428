package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryFlightStatusRepository implements FlightStatusRepository in memory
type MemoryFlightStatusRepository struct {
	mu      sync.RWMutex
	flights map[string]entity.FlightStatus
}

// NewMemoryFlightStatusRepository creates a registry seeded with the given statuses
func NewMemoryFlightStatusRepository(seed []*entity.FlightStatus) repository.FlightStatusRepository {
	r := &MemoryFlightStatusRepository{
		flights: make(map[string]entity.FlightStatus, len(seed)),
	}
	for _, f := range seed {
		if f != nil {
			r.flights[f.FlightNumber] = *f
		}
	}
	return r
}

// FindByFlightNumber returns a copy of the stored status
func (r *MemoryFlightStatusRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (*entity.FlightStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.flights[flightNumber]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", flightNumber, entity.ErrNotFound)
	}
	return &f, nil
}

// List returns copies of every status ordered by flight number
func (r *MemoryFlightStatusRepository) List(ctx context.Context) ([]*entity.FlightStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.FlightStatus, 0, len(r.flights))
	for _, f := range r.flights {
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FlightNumber < out[j].FlightNumber })
	return out, nil
}

// Save creates or replaces the status for its flight number
func (r *MemoryFlightStatusRepository) Save(ctx context.Context, status *entity.FlightStatus) error {
	if status == nil || strings.TrimSpace(status.FlightNumber) == "" {
		return fmt.Errorf("%w: flight number is required", entity.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.flights[status.FlightNumber] = *status
	return nil
}
