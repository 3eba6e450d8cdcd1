// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordHashCost is the bcrypt work factor used unless configured
// otherwise.
const DefaultPasswordHashCost = 12

// bcryptHasher is the bcrypt implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
	dummyErr  error
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to [DefaultPasswordHashCost].
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordHashCost
	}
	return &bcryptHasher{cost: cost}
}

type hashResult struct {
	hash []byte
	err  error
}

func (h *bcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := make(chan hashResult, 1)
	go func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		result <- hashResult{hash: hash, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		if errors.Is(r.err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		if r.err != nil {
			return "", fmt.Errorf("error hashing password: %w", r.err)
		}
		return string(r.hash), nil
	}
}

func (h *bcryptHasher) Compare(ctx context.Context, hash, plain string) (bool, error) {
	return h.compare(ctx, []byte(hash), plain)
}

func (h *bcryptHasher) CompareDummy(ctx context.Context, plain string) error {
	h.dummyOnce.Do(func() {
		h.dummyHash, h.dummyErr = bcrypt.GenerateFromPassword([]byte("dummy-password-never-matches"), h.cost)
	})
	if h.dummyErr != nil {
		return fmt.Errorf("error preparing dummy hash: %w", h.dummyErr)
	}

	_, err := h.compare(ctx, h.dummyHash, plain)
	return err
}

func (h *bcryptHasher) compare(ctx context.Context, hash []byte, plain string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	result := make(chan error, 1)
	go func() {
		result <- bcrypt.CompareHashAndPassword(hash, []byte(plain))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-result:
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
		}
	}
}
