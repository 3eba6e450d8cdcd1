package crypto

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher hashes and verifies account passwords.
//
// Both operations are CPU-bound and run off the calling goroutine; when ctx
// is cancelled the caller stops waiting and receives ctx.Err().
type PasswordHasher interface {
	// Hash returns the bcrypt hash of plain. Passwords longer than 72 bytes
	// are rejected with ErrPasswordTooLong.
	Hash(ctx context.Context, plain string) (string, error)

	// Compare reports whether plain matches hash. A mismatch is (false, nil);
	// ErrMalformedHash means the stored hash itself is unusable.
	Compare(ctx context.Context, hash, plain string) (bool, error)

	// CompareDummy performs a comparison against a throwaway hash of the same
	// cost and always reports false. Login runs it for unknown emails so both
	// failure paths take comparable time.
	CompareDummy(ctx context.Context, plain string) error
}

// ResetTokenGenerator issues single-use password reset tokens.
type ResetTokenGenerator interface {
	// Generate returns a fresh token. Only ResetToken.Hash is meant to be
	// persisted, ResetToken.Raw goes to the user once.
	Generate() (ResetToken, error)
}

// ResetToken is a freshly generated password reset token.
type ResetToken struct {
	// Raw is the hex encoding of 32 random bytes, sent in the reset link.
	Raw string
	// Hash is the SHA-256 hex digest of Raw, the only form stored.
	Hash string
	// ExpiresAt is the instant after which the token no longer matches.
	ExpiresAt time.Time
}
