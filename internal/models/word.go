package models

import "time"

// Word is a vocabulary entry (word plus its reading) in a user's personal list.
type Word struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Word      string    `json:"word"`
	Reading   string    `json:"reading"`
	CreatedAt time.Time `json:"createdAt"`
}
