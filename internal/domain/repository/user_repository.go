package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// UserRepository defines the interface for roster storage
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindFirstByRole(ctx context.Context, role entity.Role) (*entity.User, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
