// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// Credential-related fields are never serialized to clients.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// Photo is the file name of the user's avatar.
	Photo string `json:"photo"`

	// Role drives route authorization, see [RoleSet].
	Role Role `json:"role"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Only populated when explicitly requested from the store.
	PasswordHash string `json:"-"`

	// PasswordChangedAt is the moment of the latest password change.
	// Tokens issued before it are considered stale.
	PasswordChangedAt *time.Time `json:"-"`

	// PasswordResetToken is the SHA-256 hex digest of the pending reset token.
	PasswordResetToken *string `json:"-"`

	// PasswordResetExpires is the expiry of PasswordResetToken. Both fields
	// are either set together or cleared together.
	PasswordResetExpires *time.Time `json:"-"`

	// Active is false for soft-deleted accounts.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ChangedPasswordAfter reports whether the password was changed after a token
// with the given issued-at time was minted. Comparison is done at second
// precision, matching the precision of JWT NumericDate claims.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}

	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// Sanitized returns a copy of u without any credential material.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	return u
}

// FirstName returns the first word of Name, used for email greetings.
func (u User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// NormalizeEmail lower-cases and trims an email address the same way it is
// stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged. Role is only set by administrators.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Role  *Role
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil
}
