package repository

import (
	"context"
	"fmt"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryWellnessRepository implements WellnessRepository in memory
type MemoryWellnessRepository struct {
	mu      sync.RWMutex
	current *entity.SmartwatchData
}

// NewMemoryWellnessRepository creates a repository holding a copy of initial, which may be nil
func NewMemoryWellnessRepository(initial *entity.SmartwatchData) repository.WellnessRepository {
	return &MemoryWellnessRepository{current: initial.Clone()}
}

// Current returns a copy of the snapshot
func (r *MemoryWellnessRepository) Current(ctx context.Context) (*entity.SmartwatchData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil, fmt.Errorf("smartwatch snapshot: %w", entity.ErrNotFound)
	}
	return r.current.Clone(), nil
}

// Replace swaps the snapshot wholesale
func (r *MemoryWellnessRepository) Replace(ctx context.Context, data *entity.SmartwatchData) error {
	if data == nil {
		return fmt.Errorf("%w: smartwatch snapshot is required", entity.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = data.Clone()
	return nil
}
