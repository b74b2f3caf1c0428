package usecase

import (
	"context"
	"fmt"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"
)

// Reading ranges produced by a smartwatch sync, inclusive
const (
	heartRateMin, heartRateSpan = 70, 15
	stressMin, stressSpan       = 2, 4
	spo2Min, spo2Span           = 97, 3
)

// WellnessService owns the smartwatch snapshot
type WellnessService struct {
	repo    repository.WellnessRepository
	rng     utils.Random
	logger  logger.Logger
	metrics *metrics.Metrics

	mu sync.Mutex
}

// NewWellnessService creates a new wellness service
func NewWellnessService(repo repository.WellnessRepository, rng utils.Random, logger logger.Logger, metrics *metrics.Metrics) *WellnessService {
	return &WellnessService{
		repo:    repo,
		rng:     rng,
		logger:  logger,
		metrics: metrics,
	}
}

// Current returns a copy of the latest snapshot
func (w *WellnessService) Current(ctx context.Context) (*entity.SmartwatchData, error) {
	return w.repo.Current(ctx)
}

// FatigueRisk reports whether the latest snapshot indicates fatigue
func (w *WellnessService) FatigueRisk(ctx context.Context) (bool, error) {
	current, err := w.repo.Current(ctx)
	if err != nil {
		return false, err
	}
	return current.IndicatesFatigue(), nil
}

// Sync replaces the snapshot with fresh heart rate, stress and SpO2
// readings. Steps, water, blood pressure and trends carry over.
func (w *WellnessService) Sync(ctx context.Context) (*entity.SmartwatchData, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.repo.Current(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read smartwatch snapshot: %w", err)
	}

	next := current.Clone()
	next.HeartRate = heartRateMin + w.rng.IntN(heartRateSpan)
	next.StressLevel = stressMin + w.rng.IntN(stressSpan)
	next.SpO2 = spo2Min + w.rng.IntN(spo2Span)

	if err := w.repo.Replace(ctx, next); err != nil {
		w.metrics.ErrorsCount.WithLabelValues("smartwatch_sync").Inc()
		return nil, false, fmt.Errorf("failed to store smartwatch snapshot: %w", err)
	}

	fatigue := next.IndicatesFatigue()
	w.metrics.StoreMutations.WithLabelValues("smartwatch_sync").Inc()
	w.logger.Info("Smartwatch synced",
		"heartRate", next.HeartRate,
		"stressLevel", next.StressLevel,
		"spo2", next.SpO2,
		"fatigueRisk", fatigue)

	return next.Clone(), fatigue, nil
}
