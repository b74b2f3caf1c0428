package repository

import (
	"context"

	"crewlink-service/internal/domain/entity"
)

// NotificationRepository defines the interface for the notification feed.
// IDs are assigned by the repository and are strictly increasing.
type NotificationRepository interface {
	Prepend(ctx context.Context, n *entity.Notification) error
	Append(ctx context.Context, n *entity.Notification) error
	List(ctx context.Context) ([]*entity.Notification, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int, error)
}
