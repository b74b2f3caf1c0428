package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// FlightStatusRepository defines the interface for the flight status registry.
// Implementations store and return copies.
type FlightStatusRepository interface {
	FindByFlightNumber(ctx context.Context, flightNumber string) (*entity.FlightStatus, error)
	List(ctx context.Context) ([]*entity.FlightStatus, error)
	Save(ctx context.Context, status *entity.FlightStatus) error
}
