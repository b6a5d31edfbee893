package models

import "time"

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // e.g. "word.create", "follow.destroy"
	Message   string    `json:"message"`
	UserID    *string   `json:"userId,omitempty"` // Nullable for system events
	CreatedAt time.Time `json:"createdAt"`
}
