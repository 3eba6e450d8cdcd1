// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-tours/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the authenticated [models.User] is
// stored in the request context.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user as the request identity.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// UserFromContext retrieves the request identity from the context.
//
// Returns ok == false when no identity was attached, which means the request
// went through no authentication middleware or proceeded anonymously.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// GetUserIDFromContext retrieves the identifier of the request identity.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.UserID, true
}
