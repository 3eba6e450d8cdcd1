// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
	"unicode"
)

// Tour difficulties accepted by the catalogue.
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

// Tour is a bookable tour from the catalogue.
type Tour struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Duration        int       `json:"duration"`
	MaxGroupSize    int       `json:"maxGroupSize"`
	Difficulty      string    `json:"difficulty"`
	RatingsAverage  float64   `json:"ratingsAverage"`
	RatingsQuantity int       `json:"ratingsQuantity"`
	Price           float64   `json:"price"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description"`
	ImageCover      string    `json:"imageCover"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Tour model.
func (t Tour) TableName() string {
	return "tours"
}

// Slugify turns a tour name into a lower-case, dash separated URL segment.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Review is a rating left by a user for a tour.
type Review struct {
	ID        int64     `json:"id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	TourID    int64     `json:"tour"`
	UserID    int64     `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

// Booking records that a user paid for a tour.
type Booking struct {
	ID        int64     `json:"id"`
	TourID    int64     `json:"tour"`
	UserID    int64     `json:"user"`
	Price     float64   `json:"price"`
	Paid      bool      `json:"paid"`
	SessionID string    `json:"paymentSession,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingUpdate carries the editable booking fields. Nil fields are left
// unchanged.
type BookingUpdate struct {
	Price *float64
	Paid  *bool
}

func (b BookingUpdate) IsEmpty() bool {
	return b.Price == nil && b.Paid == nil
}

// TableName returns the name of the database table
// associated with the Booking model.
func (b Booking) TableName() string {
	return "bookings"
}
