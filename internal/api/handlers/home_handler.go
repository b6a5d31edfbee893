package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// HomeHandler serves the public landing endpoints.
type HomeHandler struct {
	posts services.PostServiceProvider
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(posts services.PostServiceProvider) *HomeHandler {
	return &HomeHandler{posts: posts}
}

// Top returns the landing payload: service name plus the newest public posts.
func (h *HomeHandler) Top(w http.ResponseWriter, r *http.Request) {
	recent, err := h.posts.GetRecentPosts(20)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load recent posts")
		http.Error(w, "Failed to load home", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "kotoba-sns",
		"posts":   recent,
	})
}

// About returns static service info.
func (h *HomeHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":     "kotoba-sns",
		"description": "short posts, likes, follows, and a personal vocabulary list",
	})
}
