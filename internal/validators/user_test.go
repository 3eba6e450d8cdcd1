// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		Name:            "Alice Doe",
		Email:           "alice@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	}
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	err := NewUserValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUserValidator_Signup(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.SignupRequest)
		wantErr bool
		field   string
	}{
		{name: "valid", mutate: func(r *models.SignupRequest) {}},
		{name: "missing name", mutate: func(r *models.SignupRequest) { r.Name = "" }, wantErr: true, field: "name"},
		{name: "bad email", mutate: func(r *models.SignupRequest) { r.Email = "not-an-email" }, wantErr: true, field: "email"},
		{name: "short password", mutate: func(r *models.SignupRequest) { r.Password, r.PasswordConfirm = "short", "short" }, wantErr: true, field: "password"},
		{name: "confirm mismatch", mutate: func(r *models.SignupRequest) { r.PasswordConfirm = "pass12345" }, wantErr: true, field: "passwordConfirm"},
		{
			name: "password over 72 bytes",
			mutate: func(r *models.SignupRequest) {
				long := strings.Repeat("ж", 40)
				r.Password, r.PasswordConfirm = long, long
			},
			wantErr: true,
			field:   "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := NewUserValidator().Validate(context.Background(), req)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestUserValidator_Signup_PointerAccepted(t *testing.T) {
	req := validSignup()
	require.NoError(t, NewUserValidator().Validate(context.Background(), &req))
}

func TestUserValidator_Signup_ScopedFields(t *testing.T) {
	req := validSignup()
	req.Name = ""

	// only the email is checked, so the missing name is not reported
	err := NewUserValidator().Validate(context.Background(), req, FieldEmail)
	require.NoError(t, err)
}

func TestUserValidator_UnknownField(t *testing.T) {
	err := NewUserValidator().Validate(context.Background(), validSignup(), "photo")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUserValidator_ResetPassword(t *testing.T) {
	v := NewUserValidator()

	require.NoError(t, v.Validate(context.Background(), models.ResetPasswordRequest{
		Password: "newpass123", PasswordConfirm: "newpass123",
	}))

	err := v.Validate(context.Background(), models.ResetPasswordRequest{
		Password: "newpass123", PasswordConfirm: "other-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = v.Validate(context.Background(), models.ResetPasswordRequest{Password: "1234567", PasswordConfirm: "1234567"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserValidator_UpdatePassword_RequiresCurrent(t *testing.T) {
	err := NewUserValidator().Validate(context.Background(), &models.UpdatePasswordRequest{
		Password: "newpass123", PasswordConfirm: "newpass123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwordCurrent")
}

func TestUserValidator_UpdateMe(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.UpdateMeRequest{}))
	assert.NoError(t, v.Validate(context.Background(), models.UpdateMeRequest{Name: strPtr("Bob")}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.UpdateMeRequest{Email: strPtr("nope")}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(context.Background(), models.UpdateMeRequest{Name: strPtr("")}), ErrInvalidInput)
}

func TestUserValidator_CreateUser(t *testing.T) {
	v := NewUserValidator()
	valid := models.CreateUserRequest{
		Name:            "Leo Gillespie",
		Email:           "leo@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
		Role:            models.RoleLeadGuide,
	}

	assert.NoError(t, v.Validate(context.Background(), valid))

	missingRole := valid
	missingRole.Role = ""
	err := v.Validate(context.Background(), missingRole)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "role")

	unknownRole := valid
	unknownRole.Role = "superuser"
	err = v.Validate(context.Background(), &unknownRole)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestUserValidator_UpdateUser(t *testing.T) {
	v := NewUserValidator()
	guide := models.RoleGuide
	bogus := models.Role("root")

	assert.NoError(t, v.Validate(context.Background(), models.UpdateUserRequest{}))
	assert.NoError(t, v.Validate(context.Background(), models.UpdateUserRequest{Role: &guide}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.UpdateUserRequest{Role: &bogus}), ErrInvalidInput)
	assert.ErrorIs(t, v.Validate(context.Background(), models.UpdateUserRequest{Email: strPtr("nope")}), ErrInvalidInput)
}
