// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the outbound HTTP integrations of
// go-tours: the transactional mail API and the hosted payment API.
//
// Both clients are built on resty (see utils.NewHTTPClient). Non-2xx answers
// are mapped to the sentinel errors in errors.go by mapHTTPError so that
// callers can use [errors.Is] regardless of the provider's wording.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MailAdapter delivers transactional emails such as the welcome message and
// the password reset link.
type MailAdapter interface {
	// Send delivers email. A nil error means the provider accepted it.
	Send(ctx context.Context, email models.Email) error
}

// PaymentAdapter opens and inspects hosted checkout sessions with the
// payment provider.
type PaymentAdapter interface {
	// CreateCheckoutSession asks the provider for a new checkout session and
	// returns its id and redirect URL.
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error)

	// GetCheckoutSession returns the current state of a session. An unknown
	// id fails with ErrNotFound.
	GetCheckoutSession(ctx context.Context, sessionID string) (models.CheckoutSession, error)
}
