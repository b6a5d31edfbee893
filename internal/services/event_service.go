package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

// EventServiceProvider defines the interface for the activity log.
type EventServiceProvider interface {
	RecordEvent(eventType, message string, userID *string) error
	GetRecentEventsForUser(userID string, limit int) ([]models.Event, error)
	PruneEventsBefore(cutoff time.Time) (int64, error)
}

// EventService provides the activity log over mutating operations.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// RecordEvent logs a new activity row.
func (s *EventService) RecordEvent(eventType, message string, userID *string) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Message: message,
		UserID:  userID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, message, user_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Message, event.UserID)
	return err
}

// GetRecentEventsForUser retrieves a user's most recent activity.
func (s *EventService) GetRecentEventsForUser(userID string, limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, message, user_id, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Message, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneEventsBefore deletes activity rows older than the cutoff and returns
// how many were removed. The cutoff is compared against CURRENT_TIMESTAMP
// values, which sqlite stores as UTC "YYYY-MM-DD HH:MM:SS" text.
func (s *EventService) PruneEventsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
