package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// LikeHandler handles HTTP requests for liking and unliking posts.
type LikeHandler struct {
	service services.LikeServiceProvider
	posts   services.PostServiceProvider
	events  services.EventServiceProvider
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service services.LikeServiceProvider, posts services.PostServiceProvider, events services.EventServiceProvider) *LikeHandler {
	return &LikeHandler{service: service, posts: posts, events: events}
}

// Create likes a post for the acting user and sends them back to the post
// page. Liking twice leaves a single like.
func (h *LikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	postID := chi.URLParam(r, "post_id")

	post, err := h.posts.GetPostByID(postID)
	if err != nil {
		redirectWithNotice(w, r, "/", "not found")
		return
	}

	if err := h.service.LikePost(claims.UserID, post.ID); err != nil {
		log.Error().Err(err).Str("post_id", post.ID).Str("user_id", claims.UserID).Msg("Failed to like post")
		http.Error(w, "Failed to like post", http.StatusInternalServerError)
		return
	}

	h.record("like.create", claims.UserID)
	http.Redirect(w, r, "/posts/"+post.ID, http.StatusSeeOther)
}

// Destroy removes the acting user's like from a post. A like that does not
// exist is a no-op, never an error.
func (h *LikeHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	postID := chi.URLParam(r, "post_id")

	post, err := h.posts.GetPostByID(postID)
	if err != nil {
		redirectWithNotice(w, r, "/", "not found")
		return
	}

	if err := h.service.UnlikePost(claims.UserID, post.ID); err != nil {
		log.Error().Err(err).Str("post_id", post.ID).Str("user_id", claims.UserID).Msg("Failed to unlike post")
		http.Error(w, "Failed to unlike post", http.StatusInternalServerError)
		return
	}

	h.record("like.destroy", claims.UserID)
	http.Redirect(w, r, "/posts/"+post.ID, http.StatusSeeOther)
}

func (h *LikeHandler) record(eventType, userID string) {
	if err := h.events.RecordEvent(eventType, "", &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
