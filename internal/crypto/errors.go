package crypto

import "errors"

var (
	// ErrMalformedHash means a stored password hash could not be parsed.
	// This is a data or configuration fault, not a credential mismatch.
	ErrMalformedHash = errors.New("stored password hash is malformed")

	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	ErrRandomSource = errors.New("failed to read random bytes")
)
