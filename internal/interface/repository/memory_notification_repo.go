package repository

import (
	"context"
	"fmt"
	"sync"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
)

// MemoryNotificationRepository implements NotificationRepository in memory
type MemoryNotificationRepository struct {
	mu     sync.RWMutex
	items  []entity.Notification
	lastID int64
}

// NewMemoryNotificationRepository creates a feed holding seed in the given order.
// Seed IDs are kept; new IDs are issued above the largest one.
func NewMemoryNotificationRepository(seed []*entity.Notification) repository.NotificationRepository {
	r := &MemoryNotificationRepository{}
	for _, n := range seed {
		if n == nil {
			continue
		}
		r.items = append(r.items, *n)
		if n.ID > r.lastID {
			r.lastID = n.ID
		}
	}
	return r
}

// nextID derives an id from the creation time, bumped past the last issued id.
// Caller must hold the write lock.
func (r *MemoryNotificationRepository) nextID(n *entity.Notification) int64 {
	id := n.CreatedAt.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

// Prepend inserts n at the head of the feed and sets its ID
func (r *MemoryNotificationRepository) Prepend(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = r.nextID(n)
	r.items = append([]entity.Notification{*n}, r.items...)
	return nil
}

// Append adds n at the tail of the feed and sets its ID
func (r *MemoryNotificationRepository) Append(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = r.nextID(n)
	r.items = append(r.items, *n)
	return nil
}

// List returns copies in feed order
func (r *MemoryNotificationRepository) List(ctx context.Context) ([]*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Notification, len(r.items))
	for i := range r.items {
		n := r.items[i]
		out[i] = &n
	}
	return out, nil
}

// CountUnread counts entries with Read == false
func (r *MemoryNotificationRepository) CountUnread(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flags a single notification as read
func (r *MemoryNotificationRepository) MarkRead(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("notification %d: %w", id, entity.ErrNotFound)
}

// MarkAllRead flips every read flag under one lock and returns how many changed
func (r *MemoryNotificationRepository) MarkAllRead(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for i := range r.items {
		if !r.items[i].Read {
			r.items[i].Read = true
			changed++
		}
	}
	return changed, nil
}
