// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // не используем напрямую, goose сам будет ходить в DB

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got: %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 migrations, got %d: %v", len(files), files)
	}

	for _, name := range files {
		body, err := fs.ReadFile(embedMigrations, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
			t.Errorf("%s: missing goose annotations", name)
		}
	}

	users, _ := fs.ReadFile(embedMigrations, "00001_create_users.sql")
	if !strings.Contains(string(users), "users_reset_token_pair") {
		t.Error("users table must enforce the reset token pair constraint")
	}

	bookings, _ := fs.ReadFile(embedMigrations, "00004_add_booking_payment_session.sql")
	if !strings.Contains(string(bookings), "bookings_session_id_unique") {
		t.Error("a payment session must not be booked twice")
	}
}
