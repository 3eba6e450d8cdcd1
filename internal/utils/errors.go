package utils

import "errors"

// Token verification failures. ValidateAndParseJWTToken always returns one
// of these, wrapped with the underlying jwt error.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenInvalid          = errors.New("token is invalid")
)
