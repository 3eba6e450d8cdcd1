// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-tours/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestUserCtxKey(t *testing.T) {
	if UserCtxKey.String() != "user" {
		t.Errorf("expected 'user', got '%s'", UserCtxKey.String())
	}
}

func TestUserFromContext_Success(t *testing.T) {
	ctx := WithUser(context.Background(), models.User{UserID: 42, Role: models.RoleAdmin})

	user, ok := UserFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if user.UserID != 42 || user.Role != models.RoleAdmin {
		t.Errorf("unexpected user %+v", user)
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != 42 {
		t.Errorf("expected userID=42, got %d (ok=%v)", userID, ok)
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	if _, ok := UserFromContext(ctx); ok {
		t.Error("expected ok=false for missing user")
	}
	if userID, ok := GetUserIDFromContext(ctx); ok || userID != 0 {
		t.Errorf("expected (0, false), got (%d, %v)", userID, ok)
	}
}

func TestUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not-a-user")

	if _, ok := UserFromContext(ctx); ok {
		t.Error("expected ok=false for wrong type")
	}
}
