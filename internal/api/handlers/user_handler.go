package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/services"
	"github.com/skawahara/kotoba-sns-be/internal/validation"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	service services.UserServiceProvider
	likes   services.LikeServiceProvider
	events  services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, likes services.LikeServiceProvider, events services.EventServiceProvider) *UserHandler {
	return &UserHandler{service: service, likes: likes, events: events}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfilePayload defines the submitted fields for profile updates.
type ProfilePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Signup handles new user registration. A reused email comes back as a field
// error on the form, not a transport failure.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		payload.Password = ""
		invalidPayload(w, payload, fieldErrors)
		return
	}

	user, err := h.service.CreateUser(payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			payload.Password = ""
			invalidPayload(w, payload, map[string]string{"email": "has already been taken"})
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	h.record("user.signup", "signed up", user.ID)
	redirectWithNotice(w, r, "/login", "account created")
}

// Login handles authentication and session cookie issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		invalidPayload(w, LoginPayload{Email: payload.Email}, map[string]string{"email": "or password is incorrect"})
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(auth.SessionDuration),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	redirectWithNotice(w, r, "/", "logged in")
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
	redirectWithNotice(w, r, "/", "logged out")
}

// Me returns the currently authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("User from session not found")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Index returns the user directory.
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Show returns a public profile by id.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		redirectWithNotice(w, r, "/", "not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Likes returns the posts a user has liked.
func (h *UserHandler) Likes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		redirectWithNotice(w, r, "/", "not found")
		return
	}

	posts, err := h.likes.GetLikedPosts(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list liked posts")
		http.Error(w, "Failed to retrieve likes", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Update applies profile changes. A user may only update their own profile;
// anything else redirects with a notice and touches nothing.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentUser(r.Context())
	id := chi.URLParam(r, "id")
	if id != claims.UserID {
		redirectWithNotice(w, r, "/users", "not authorized")
		return
	}

	var payload ProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrors := validation.Check(payload); fieldErrors != nil {
		invalidPayload(w, payload, fieldErrors)
		return
	}

	if _, err := h.service.UpdateUser(claims.UserID, payload.Name, payload.Email); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			invalidPayload(w, payload, map[string]string{"email": "has already been taken"})
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	h.record("user.update", "updated profile", claims.UserID)
	redirectWithNotice(w, r, "/users/"+claims.UserID, "updated")
}

func (h *UserHandler) record(eventType, message, userID string) {
	if err := h.events.RecordEvent(eventType, message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
