package entity

import (
	"fmt"
	"time"
)

// NotificationType classifies feed entries
type NotificationType string

const (
	NotificationWellness NotificationType = "wellness"
	NotificationAlert    NotificationType = "alert"
	NotificationSystem   NotificationType = "system"
	NotificationInfo     NotificationType = "info"
)

// Valid reports whether t is a known notification type
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationWellness, NotificationAlert, NotificationSystem, NotificationInfo:
		return true
	}
	return false
}

// FlightAlertPrefix starts the title of every simulator-generated flight alert
const FlightAlertPrefix = "Flight Alert"

// Notification is an entry in the notification feed
type Notification struct {
	ID        int64            `json:"id"` // monotonic, derived from the creation time
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}

// RelativeTimestamp renders CreatedAt the way the feed shows it: "Just now", "5m ago", "3h ago", "2d ago"
func (n Notification) RelativeTimestamp(now time.Time) string {
	age := now.Sub(n.CreatedAt)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	}
}
