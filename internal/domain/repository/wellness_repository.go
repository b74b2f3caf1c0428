package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// WellnessRepository defines the interface for the smartwatch snapshot
type WellnessRepository interface {
	Current(ctx context.Context) (*entity.SmartwatchData, error)
	Replace(ctx context.Context, data *entity.SmartwatchData) error
}
