package models

import (
	"time"

	"github.com/ovisslabs/oviss-backend/pkg/enums"
)

// Notification is one entry in the in-app notification log, newest first.
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Type      enums.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Timestamp time.Time              `json:"timestamp"`
	Read      bool                   `json:"read"`
}
