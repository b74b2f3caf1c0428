package repository

import (
	"context"
	"fmt"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryUserRepository implements UserRepository in memory, preserving roster order
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []*entity.User
}

// NewMemoryUserRepository creates a roster holding copies of seed
func NewMemoryUserRepository(seed []*entity.User) repository.UserRepository {
	r := &MemoryUserRepository{}
	for _, u := range seed {
		if u != nil {
			r.users = append(r.users, u.Clone())
		}
	}
	return r
}

func (r *MemoryUserRepository) indexOf(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// FindByID finds a user by id
func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.users[i].Clone(), nil
	}
	return nil, fmt.Errorf("user %s: %w", id, entity.ErrNotFound)
}

// FindFirstByRole returns the first roster member holding role
func (r *MemoryUserRepository) FindFirstByRole(ctx context.Context, role entity.Role) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Role == role {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user with role %s: %w", role, entity.ErrNotFound)
}

// FindByEmployeeID finds a user by employee id
func (r *MemoryUserRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.EmployeeID == employeeID {
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", employeeID, entity.ErrNotFound)
}

// List returns copies in roster order
func (r *MemoryUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// Create appends a user, rejecting duplicate ids and employee ids
func (r *MemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == user.ID {
			return fmt.Errorf("%w: duplicate user id %s", entity.ErrInvalidInput, user.ID)
		}
		if u.EmployeeID == user.EmployeeID {
			return fmt.Errorf("%w: duplicate employee id %s", entity.ErrInvalidInput, user.EmployeeID)
		}
	}
	r.users = append(r.users, user.Clone())
	return nil
}

// Update replaces the user with the same id
func (r *MemoryUserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(user.ID)
	if i < 0 {
		return fmt.Errorf("user %s: %w", user.ID, entity.ErrNotFound)
	}
	for j, u := range r.users {
		if j != i && u.EmployeeID == user.EmployeeID {
			return fmt.Errorf("%w: employee id %s already assigned to %s", entity.ErrInvalidInput, user.EmployeeID, u.ID)
		}
	}
	r.users[i] = user.Clone()
	return nil
}

// Delete removes the user with the given id
func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("user %s: %w", id, entity.ErrNotFound)
	}
	r.users = append(r.users[:i:i], r.users[i+1:]...)
	return nil
}
