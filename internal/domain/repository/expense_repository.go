package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense storage.
// Prepend keeps the most recent expense first.
type ExpenseRepository interface {
	Prepend(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context) ([]*entity.Expense, error)
}
