package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// FollowHandler handles HTTP requests for the follow graph.
type FollowHandler struct {
	service services.FollowServiceProvider
	users   services.UserServiceProvider
	events  services.EventServiceProvider
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(service services.FollowServiceProvider, users services.UserServiceProvider, events services.EventServiceProvider) *FollowHandler {
	return &FollowHandler{service: service, users: users, events: events}
}

// Create follows the target user. An unknown target sends the user home with
// no edge created; following someone twice leaves a single edge.
func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	targetID := chi.URLParam(r, "target_user_id")

	target, err := h.users.GetUserByID(targetID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if target.ID == claims.UserID {
		redirectWithNotice(w, r, "/users/"+target.ID, "cannot follow yourself")
		return
	}

	if err := h.service.Follow(claims.UserID, target.ID); err != nil {
		log.Error().Err(err).Str("follower_id", claims.UserID).Str("followed_id", target.ID).Msg("Failed to follow user")
		http.Error(w, "Failed to follow user", http.StatusInternalServerError)
		return
	}

	h.record("follow.create", "followed "+target.Name, claims.UserID)
	http.Redirect(w, r, "/users/"+target.ID, http.StatusSeeOther)
}

// Destroy unfollows the target user. An unknown target sends the user home;
// a missing edge is a no-op, never a crash.
func (h *FollowHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	targetID := chi.URLParam(r, "target_user_id")

	target, err := h.users.GetUserByID(targetID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.service.Unfollow(claims.UserID, target.ID); err != nil {
		log.Error().Err(err).Str("follower_id", claims.UserID).Str("followed_id", target.ID).Msg("Failed to unfollow user")
		http.Error(w, "Failed to unfollow user", http.StatusInternalServerError)
		return
	}

	h.record("follow.destroy", "unfollowed "+target.Name, claims.UserID)
	http.Redirect(w, r, "/users/"+target.ID, http.StatusSeeOther)
}

// Following lists the users the acting user follows. A user following nobody
// gets an empty array, never null.
func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	users, err := h.service.GetFollowing(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list following")
		http.Error(w, "Failed to retrieve following", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Followers lists the users following the acting user.
func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	users, err := h.service.GetFollowers(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list followers")
		http.Error(w, "Failed to retrieve followers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *FollowHandler) record(eventType, message, userID string) {
	if err := h.events.RecordEvent(eventType, message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
