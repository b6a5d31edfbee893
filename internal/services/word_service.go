package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

// WordServiceProvider defines the interface for vocabulary list services.
type WordServiceProvider interface {
	GetWordsByUser(userID string) ([]models.Word, error)
	GetWordByID(id string) (models.Word, error)
	GetOwnedWord(id, userID string) (models.Word, error)
	CreateWord(userID, word, reading string) (models.Word, error)
	UpdateWord(id, word, reading string) (models.Word, error)
	DeleteWord(id string) error
}

// WordService provides business logic for per-user vocabulary lists.
type WordService struct {
	db *sql.DB
}

// NewWordService creates a new WordService.
func NewWordService(db *sql.DB) *WordService {
	return &WordService{db: db}
}

// GetWordsByUser returns all words owned by a user, in insertion order.
// A user with no words gets an empty slice.
func (s *WordService) GetWordsByUser(userID string) ([]models.Word, error) {
	rows, err := s.db.Query("SELECT id, user_id, word, reading, created_at FROM words WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []models.Word{}
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(&word.ID, &word.UserID, &word.Word, &word.Reading, &word.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// GetWordByID retrieves a single word by its ID, regardless of owner.
func (s *WordService) GetWordByID(id string) (models.Word, error) {
	var word models.Word
	row := s.db.QueryRow("SELECT id, user_id, word, reading, created_at FROM words WHERE id = ?", id)
	err := row.Scan(&word.ID, &word.UserID, &word.Word, &word.Reading, &word.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Word{}, ErrNotFound
		}
		return models.Word{}, err
	}
	return word, nil
}

// GetOwnedWord is the ownership guard for word mutations: it loads the word
// broadly by id, then compares the owner against the acting user. Callers must
// stop on error; a guarded mutation is never applied to a foreign row.
func (s *WordService) GetOwnedWord(id, userID string) (models.Word, error) {
	word, err := s.GetWordByID(id)
	if err != nil {
		return models.Word{}, err
	}
	if word.UserID != userID {
		return models.Word{}, ErrNotOwned
	}
	return word, nil
}

// CreateWord persists a new word owned by the given user.
func (s *WordService) CreateWord(userID, word, reading string) (models.Word, error) {
	entry := models.Word{
		ID:      uuid.New().String(),
		UserID:  userID,
		Word:    word,
		Reading: reading,
	}

	stmt, err := s.db.Prepare("INSERT INTO words(id, user_id, word, reading) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Word{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(entry.ID, entry.UserID, entry.Word, entry.Reading); err != nil {
		return models.Word{}, err
	}
	return s.GetWordByID(entry.ID)
}

// UpdateWord replaces a word's text fields. The ownership guard has already
// run by the time this is called.
func (s *WordService) UpdateWord(id, word, reading string) (models.Word, error) {
	if _, err := s.db.Exec("UPDATE words SET word = ?, reading = ? WHERE id = ?", word, reading, id); err != nil {
		return models.Word{}, err
	}
	return s.GetWordByID(id)
}

// DeleteWord removes a word row.
func (s *WordService) DeleteWord(id string) error {
	_, err := s.db.Exec("DELETE FROM words WHERE id = ?", id)
	return err
}
