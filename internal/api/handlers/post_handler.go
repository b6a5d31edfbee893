package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/models"
	"github.com/skawahara/kotoba-sns-be/internal/services"
	"github.com/skawahara/kotoba-sns-be/internal/validation"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service services.PostServiceProvider
	likes   services.LikeServiceProvider
	events  services.EventServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider, likes services.LikeServiceProvider, events services.EventServiceProvider) *PostHandler {
	return &PostHandler{service: service, likes: likes, events: events}
}

// PostPayload defines the submitted fields for post create/update.
type PostPayload struct {
	Content string `json:"content" validate:"required,max=140"`
}

// PostDetail is a post with its like count, for the show page.
type PostDetail struct {
	models.Post
	LikeCount int `json:"likeCount"`
}

// Index lists the acting user's posts.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	posts, err := h.service.GetPostsByUser(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list posts")
		http.Error(w, "Failed to retrieve posts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// New returns the blank creation form values.
func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PostPayload{})
}

// Create validates and persists a new post owned by the acting user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		invalidPayload(w, payload, fieldErrors)
		return
	}

	if _, err := h.service.CreatePost(claims.UserID, payload.Content); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create post")
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	h.record("post.create", "posted", claims.UserID)
	redirectWithNotice(w, r, "/posts", "created")
}

// Show returns one post by id with its like count. Reads are public.
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		redirectWithNotice(w, r, "/posts", "not found")
		return
	}

	count, err := h.likes.CountForPost(post.ID)
	if err != nil {
		log.Error().Err(err).Str("post_id", post.ID).Msg("Failed to count likes")
		http.Error(w, "Failed to retrieve post", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, PostDetail{Post: post, LikeCount: count})
}

// Edit returns the current values for the edit form, ownership-guarded.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	post, err := h.service.GetOwnedPost(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/posts") {
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Update applies submitted content to an owned post.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	post, err := h.service.GetOwnedPost(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/posts") {
		return
	}

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		invalidPayload(w, payload, fieldErrors)
		return
	}

	if _, err := h.service.UpdatePost(post.ID, payload.Content); err != nil {
		log.Error().Err(err).Str("post_id", post.ID).Msg("Failed to update post")
		http.Error(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	h.record("post.update", "edited a post", claims.UserID)
	redirectWithNotice(w, r, "/posts", "updated")
}

// Destroy deletes an owned post.
func (h *PostHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	post, err := h.service.GetOwnedPost(chi.URLParam(r, "id"), claims.UserID)
	if guardFailed(w, r, err, "/posts") {
		return
	}

	if err := h.service.DeletePost(post.ID); err != nil {
		log.Error().Err(err).Str("post_id", post.ID).Msg("Failed to delete post")
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	h.record("post.destroy", "deleted a post", claims.UserID)
	redirectWithNotice(w, r, "/posts", "deleted")
}

func (h *PostHandler) record(eventType, message, userID string) {
	if err := h.events.RecordEvent(eventType, message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
