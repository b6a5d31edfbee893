package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

var jwtKey = []byte("dev-insecure-secret")

// Init sets the key used to sign and validate session tokens. main calls it
// once with the configured secret before the server starts serving requests;
// tokens issued earlier are signed with an insecure development fallback.
func Init(secret string) {
	if secret != "" {
		jwtKey = []byte(secret)
	}
}

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionDuration is how long an issued session stays valid.
const SessionDuration = 24 * time.Hour

// Claims defines the session token claims structure.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type contextKey string

// UserClaimsKey is the context key for the authenticated user's claims.
const UserClaimsKey = contextKey("userClaims")

// GenerateToken creates a new signed session token for a given user.
func GenerateToken(user models.User) (string, error) {
	expirationTime := time.Now().Add(SessionDuration)
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken parses and validates a session token string.
func ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// CurrentUser extracts the authenticated user's claims from a request context.
// The second return is false when the request is unauthenticated.
func CurrentUser(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// RequireUser protects routes that need an acting user. Unauthenticated
// requests are redirected to the login entry point rather than rejected with
// an error status; no handler code runs for them.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// Prefer the session cookie; fall back to a bearer header for
			// non-browser clients.
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				tokenStr = cookie.Value
			}
			if tokenStr == "" {
				authHeader := r.Header.Get("Authorization")
				if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
					tokenStr = after
				}
			}

			if tokenStr == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			claims, err := ValidateToken(tokenStr)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
