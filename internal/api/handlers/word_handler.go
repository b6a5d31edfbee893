package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/services"
	"github.com/skawahara/kotoba-sns-be/internal/validation"
)

// WordHandler handles HTTP requests for a user's vocabulary list.
type WordHandler struct {
	service services.WordServiceProvider
	events  services.EventServiceProvider
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(service services.WordServiceProvider, events services.EventServiceProvider) *WordHandler {
	return &WordHandler{service: service, events: events}
}

// WordPayload defines the submitted fields for word create/update.
type WordPayload struct {
	Word    string `json:"word" validate:"required,max=140"`
	Reading string `json:"reading" validate:"required,max=140"`
}

// Index lists the acting user's words. Other users' rows are never included.
func (h *WordHandler) Index(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	words, err := h.service.GetWordsByUser(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list words")
		http.Error(w, "Failed to retrieve words", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// New returns the blank creation form values.
func (h *WordHandler) New(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WordPayload{})
}

// Create validates and persists a new word owned by the acting user.
// Validation failures are a rendering path, not a transport error: the
// submitted values come back with field messages and nothing is persisted.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())

	var payload WordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		invalidPayload(w, payload, fieldErrors)
		return
	}

	word, err := h.service.CreateWord(claims.UserID, payload.Word, payload.Reading)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create word")
		http.Error(w, "Failed to create word", http.StatusInternalServerError)
		return
	}

	h.record("word.create", "added "+word.Word, claims.UserID)
	redirectWithNotice(w, r, "/words", "created")
}

// Show returns one word by id. Reads are public; only mutations are guarded.
func (h *WordHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	word, err := h.service.GetWordByID(id)
	if err != nil {
		redirectWithNotice(w, r, "/words", "not found")
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Edit returns the current values for the edit form, ownership-guarded.
func (h *WordHandler) Edit(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	word, err := h.service.GetOwnedWord(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/words") {
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Update applies submitted values to an owned word. The guard runs before
// anything else; a foreign or missing row means no mutation at all.
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	word, err := h.service.GetOwnedWord(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/words") {
		return
	}

	var payload WordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		invalidPayload(w, payload, fieldErrors)
		return
	}

	if _, err := h.service.UpdateWord(word.ID, payload.Word, payload.Reading); err != nil {
		log.Error().Err(err).Str("word_id", word.ID).Msg("Failed to update word")
		http.Error(w, "Failed to update word", http.StatusInternalServerError)
		return
	}

	h.record("word.update", "edited "+payload.Word, claims.UserID)
	redirectWithNotice(w, r, "/words", "updated")
}

// Destroy deletes an owned word.
func (h *WordHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	word, err := h.service.GetOwnedWord(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/words") {
		return
	}

	if err := h.service.DeleteWord(word.ID); err != nil {
		log.Error().Err(err).Str("word_id", word.ID).Msg("Failed to delete word")
		http.Error(w, "Failed to delete word", http.StatusInternalServerError)
		return
	}

	h.record("word.destroy", "removed "+word.Word, claims.UserID)
	redirectWithNotice(w, r, "/words", "deleted")
}

// record writes an activity row; failures are logged, never surfaced.
func (h *WordHandler) record(eventType, message, userID string) {
	if err := h.events.RecordEvent(eventType, message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
