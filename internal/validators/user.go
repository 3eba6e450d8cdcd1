// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MKhiriev/go-tours/models"
)

// Field names accepted by [UserValidator].
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldPasswordCurrent = "passwordCurrent"
	FieldRole            = "role"
)

// UserValidator checks account payloads: signup, password changes and
// profile updates.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for account payloads.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms are
// both accepted.
//
// Supported types:
//   - models.SignupRequest
//   - models.ResetPasswordRequest
//   - models.UpdatePasswordRequest
//   - models.UpdateMeRequest
//   - models.CreateUserRequest
//   - models.UpdateUserRequest
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(&value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(&value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)

	case models.UpdatePasswordRequest:
		return v.validateUpdatePassword(&value, fields...)
	case *models.UpdatePasswordRequest:
		return v.validateUpdatePassword(value, fields...)

	case models.UpdateMeRequest:
		return v.validateUpdateMe(&value, fields...)
	case *models.UpdateMeRequest:
		return v.validateUpdateMe(value, fields...)

	case models.CreateUserRequest:
		return v.validateCreateUser(&value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUser(value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUser(&value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdateUser(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignup(r *models.SignupRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldName:            validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		FieldEmail:           validation.Field(&r.Email, validation.Required, validation.RuneLength(3, 254), is.Email),
		FieldPassword:        validation.Field(&r.Password, passwordRules...),
		FieldPasswordConfirm: validation.Field(&r.PasswordConfirm, validation.Required, validation.By(equalsString(r.Password))),
	}

	return validateScoped(r, rules, []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirm}, fields)
}

func (v *UserValidator) validateResetPassword(r *models.ResetPasswordRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldPassword:        validation.Field(&r.Password, passwordRules...),
		FieldPasswordConfirm: validation.Field(&r.PasswordConfirm, validation.Required, validation.By(equalsString(r.Password))),
	}

	return validateScoped(r, rules, []string{FieldPassword, FieldPasswordConfirm}, fields)
}

func (v *UserValidator) validateUpdatePassword(r *models.UpdatePasswordRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldPasswordCurrent: validation.Field(&r.PasswordCurrent, validation.Required),
		FieldPassword:        validation.Field(&r.Password, passwordRules...),
		FieldPasswordConfirm: validation.Field(&r.PasswordConfirm, validation.Required, validation.By(equalsString(r.Password))),
	}

	return validateScoped(r, rules, []string{FieldPasswordCurrent, FieldPassword, FieldPasswordConfirm}, fields)
}

// validateUpdateMe checks only the profile fields; rejecting password fields
// on this route is up to the caller.
func (v *UserValidator) validateUpdateMe(r *models.UpdateMeRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldName:  validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		FieldEmail: validation.Field(&r.Email, validation.NilOrNotEmpty, validation.RuneLength(3, 254), is.Email),
	}

	return validateScoped(r, rules, []string{FieldName, FieldEmail}, fields)
}

func (v *UserValidator) validateCreateUser(r *models.CreateUserRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldName:            validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 200)),
		FieldEmail:           validation.Field(&r.Email, validation.Required, validation.RuneLength(3, 254), is.Email),
		FieldPassword:        validation.Field(&r.Password, passwordRules...),
		FieldPasswordConfirm: validation.Field(&r.PasswordConfirm, validation.Required, validation.By(equalsString(r.Password))),
		FieldRole:            validation.Field(&r.Role, validation.Required, validation.By(validRole)),
	}

	return validateScoped(r, rules, []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirm, FieldRole}, fields)
}

func (v *UserValidator) validateUpdateUser(r *models.UpdateUserRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldName:  validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		FieldEmail: validation.Field(&r.Email, validation.NilOrNotEmpty, validation.RuneLength(3, 254), is.Email),
		FieldRole:  validation.Field(&r.Role, validation.NilOrNotEmpty, validation.By(validRole)),
	}

	return validateScoped(r, rules, []string{FieldName, FieldEmail, FieldRole}, fields)
}
