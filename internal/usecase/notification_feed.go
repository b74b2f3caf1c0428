package usecase

import (
	"context"
	"fmt"
	"strings"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"
)

// NotificationFeed is the read side of the notification list plus the
// publish path for sources other than the flight simulator
type NotificationFeed struct {
	repo    repository.NotificationRepository
	clock   utils.Clock
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewNotificationFeed creates a new notification feed
func NewNotificationFeed(repo repository.NotificationRepository, clock utils.Clock, logger logger.Logger, metrics *metrics.Metrics) *NotificationFeed {
	return &NotificationFeed{
		repo:    repo,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns the feed, most recent simulator alerts first
func (f *NotificationFeed) List(ctx context.Context) ([]*entity.Notification, error) {
	return f.repo.List(ctx)
}

// UnreadCount counts notifications not yet read
func (f *NotificationFeed) UnreadCount(ctx context.Context) (int, error) {
	return f.repo.CountUnread(ctx)
}

// MarkRead flags one notification as read
func (f *NotificationFeed) MarkRead(ctx context.Context, id int64) error {
	return f.repo.MarkRead(ctx, id)
}

// MarkAllRead flags every notification as read in one step
func (f *NotificationFeed) MarkAllRead(ctx context.Context) (int, error) {
	changed, err := f.repo.MarkAllRead(ctx)
	if err != nil {
		f.metrics.ErrorsCount.WithLabelValues("mark_all_read").Inc()
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	f.logger.Debug("Notifications marked read", "count", changed)
	return changed, nil
}

// FlightAlerts returns the alert-type entries titled "Flight Alert: ...", in feed order
func (f *NotificationFeed) FlightAlerts(ctx context.Context) ([]*entity.Notification, error) {
	all, err := f.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Notification, 0, len(all))
	for _, n := range all {
		if n.Type == entity.NotificationAlert && strings.HasPrefix(n.Title, entity.FlightAlertPrefix) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Publish appends an unread notification stamped with the current time
func (f *NotificationFeed) Publish(ctx context.Context, kind entity.NotificationType, title, message string) (*entity.Notification, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown notification type %q", entity.ErrInvalidInput, kind)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: notification title is required", entity.ErrInvalidInput)
	}
	n := &entity.Notification{
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: f.clock.Now(),
	}
	if err := f.repo.Append(ctx, n); err != nil {
		f.metrics.ErrorsCount.WithLabelValues("publish_notification").Inc()
		return nil, fmt.Errorf("failed to publish notification: %w", err)
	}

	f.metrics.NotificationsEmitted.WithLabelValues(string(kind)).Inc()
	f.logger.Info("Notification published", "id", n.ID, "type", kind, "title", title)
	return n, nil
}
