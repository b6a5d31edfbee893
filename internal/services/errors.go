package services

import "errors"

// Sentinel errors shared across services. Handlers branch on these with
// errors.Is to pick the right redirect.
var (
	// ErrNotFound means the requested entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwned means the entity exists but belongs to another user. The
	// lookup is deliberately unscoped so this case stays distinguishable from
	// ErrNotFound.
	ErrNotOwned = errors.New("not owned by acting user")
	// ErrEmailTaken means the email is already registered to another account.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials means login failed; callers must not reveal
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
