package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/skawahara/kotoba-sns-be/internal/services"
)

// NoticeCookieName carries the transient status message attached to a
// redirect. The frontend reads and clears it; it is deliberately not HttpOnly.
const NoticeCookieName = "notice"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// redirectWithNotice issues the standard post-mutation redirect: 303 See
// Other plus a notice cookie.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, location, notice string) {
	http.SetCookie(w, &http.Cookie{
		Name:   NoticeCookieName,
		Value:  url.QueryEscape(notice),
		Path:   "/",
		MaxAge: 10,
	})
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// invalidPayload is the validation-failure rendering path: transport-level
// success, submitted values echoed back, and field-level error messages.
func invalidPayload(w http.ResponseWriter, values any, fieldErrors map[string]string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"values": values,
		"errors": fieldErrors,
	})
}

// guardFailed maps an ownership-guard error to its redirect and reports
// whether the handler must stop. A true return means the response is written
// and no further handler code may run.
func guardFailed(w http.ResponseWriter, r *http.Request, err error, indexPath string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, services.ErrNotOwned), errors.Is(err, services.ErrNotFound):
		redirectWithNotice(w, r, indexPath, "not authorized")
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
	return true
}
