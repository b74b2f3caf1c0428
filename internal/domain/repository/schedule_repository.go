package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// ScheduleRepository defines the interface for the roster-wide schedule
type ScheduleRepository interface {
	FindByID(ctx context.Context, id string) (*entity.ScheduleEvent, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.ScheduleEvent, error)
	List(ctx context.Context) ([]*entity.ScheduleEvent, error)
	Create(ctx context.Context, event *entity.ScheduleEvent) error
	Update(ctx context.Context, event *entity.ScheduleEvent) error
	DeleteByUserID(ctx context.Context, userID string) (int, error)
}
