package repository

import (
	"context"
	"fmt"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryScheduleRepository implements ScheduleRepository in memory, preserving insertion order
type MemoryScheduleRepository struct {
	mu     sync.RWMutex
	events []*entity.ScheduleEvent
}

// NewMemoryScheduleRepository creates a schedule holding copies of seed
func NewMemoryScheduleRepository(seed []*entity.ScheduleEvent) repository.ScheduleRepository {
	r := &MemoryScheduleRepository{}
	for _, e := range seed {
		if e != nil {
			r.events = append(r.events, e.Clone())
		}
	}
	return r
}

// FindByID finds an event by id
func (r *MemoryScheduleRepository) FindByID(ctx context.Context, id string) (*entity.ScheduleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, fmt.Errorf("schedule event %s: %w", id, entity.ErrNotFound)
}

// FindByUserID returns the user's events in insertion order
func (r *MemoryScheduleRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.ScheduleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.ScheduleEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// List returns every event in insertion order
func (r *MemoryScheduleRepository) List(ctx context.Context) ([]*entity.ScheduleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ScheduleEvent, len(r.events))
	for i, e := range r.events {
		out[i] = e.Clone()
	}
	return out, nil
}

// Create appends an event
func (r *MemoryScheduleRepository) Create(ctx context.Context, event *entity.ScheduleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == event.ID {
			return fmt.Errorf("%w: duplicate schedule event id %s", entity.ErrInvalidInput, event.ID)
		}
	}
	r.events = append(r.events, event.Clone())
	return nil
}

// Update replaces the event with the same id
func (r *MemoryScheduleRepository) Update(ctx context.Context, event *entity.ScheduleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == event.ID {
			r.events[i] = event.Clone()
			return nil
		}
	}
	return fmt.Errorf("schedule event %s: %w", event.ID, entity.ErrNotFound)
}

// DeleteByUserID removes every event owned by userID and returns how many were removed
func (r *MemoryScheduleRepository) DeleteByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0:0]
	removed := 0
	for _, e := range r.events {
		if e.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}
