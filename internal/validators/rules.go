package validators

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/MKhiriev/go-tours/models"
)

const (
	// MinPasswordLength is the minimum number of characters of a password.
	MinPasswordLength = 8

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

var (
	errPasswordTooLong     = fmt.Errorf("must be at most %d bytes long", MaxPasswordBytes)
	errPasswordsDoNotMatch = errors.New("passwords are not the same")
	errExpectedStringValue = errors.New("must be a string")
	errUnknownRole         = errors.New("must be one of user, guide, lead-guide, admin")

	passwordRules = []validation.Rule{
		validation.Required,
		validation.RuneLength(MinPasswordLength, 0),
		validation.By(maxBytes(MaxPasswordBytes)),
	}
)

// maxBytes limits the byte length of a string, which for non-ASCII input is
// larger than its rune count.
func maxBytes(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return errExpectedStringValue
		}
		if len(s) > limit {
			return errPasswordTooLong
		}
		return nil
	}
}

func equalsString(other string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return errExpectedStringValue
		}
		if s != other {
			return errPasswordsDoNotMatch
		}
		return nil
	}
}

// validRole accepts a models.Role or a pointer to one. A nil pointer passes;
// presence is checked by the Required rules.
func validRole(value interface{}) error {
	switch role := value.(type) {
	case models.Role:
		if role == "" || role.IsValid() {
			return nil
		}
	case *models.Role:
		if role == nil || *role == "" || role.IsValid() {
			return nil
		}
	}
	return errUnknownRole
}

// validateScoped runs the rules of the requested fields against structPtr.
// An empty fields list selects defaults.
func validateScoped(structPtr any, rules map[string]*validation.FieldRules, defaults []string, fields []string) error {
	if len(fields) == 0 {
		fields = defaults
	}

	selected := make([]*validation.FieldRules, 0, len(fields))
	for _, f := range fields {
		rule, ok := rules[f]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		selected = append(selected, rule)
	}

	err := validation.ValidateStruct(structPtr, selected...)
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
