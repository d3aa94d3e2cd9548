package notifications

import (
	"time"

	"hrportal/internal/platform/apperror"
)

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

var ErrNotificationNotFound = apperror.NotFound("notification not found")
