package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput wraps the field errors reported by the rules.
	ErrInvalidInput = errors.New("invalid input data")
)
