package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT with convenience accessors for authentication flows.
//
// It embeds [jwt.RegisteredClaims] so a *Token can be handed directly to
// [jwt.ParseWithClaims]. SignedString holds the compact serialized form
// (header.payload.signature) transmitted to clients.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// IssuedAtTime returns the "iat" claim or the zero time if absent.
func (t *Token) IssuedAtTime() time.Time {
	if t.IssuedAt == nil {
		return time.Time{}
	}
	return t.IssuedAt.Time
}

// ExpiresAtTime returns the "exp" claim or the zero time if absent.
func (t *Token) ExpiresAtTime() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
