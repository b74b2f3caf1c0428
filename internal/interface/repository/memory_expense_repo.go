package repository

import (
	"context"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryExpenseRepository implements ExpenseRepository in memory
type MemoryExpenseRepository struct {
	mu       sync.RWMutex
	expenses []entity.Expense
}

// NewMemoryExpenseRepository creates an expense list holding seed in the given order
func NewMemoryExpenseRepository(seed []*entity.Expense) repository.ExpenseRepository {
	r := &MemoryExpenseRepository{}
	for _, e := range seed {
		if e != nil {
			r.expenses = append(r.expenses, *e)
		}
	}
	return r
}

// Prepend puts expense at the head of the list
func (r *MemoryExpenseRepository) Prepend(ctx context.Context, expense *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expenses = append([]entity.Expense{*expense}, r.expenses...)
	return nil
}

// List returns copies in stored order
func (r *MemoryExpenseRepository) List(ctx context.Context) ([]*entity.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Expense, len(r.expenses))
	for i := range r.expenses {
		e := r.expenses[i]
		out[i] = &e
	}
	return out, nil
}
