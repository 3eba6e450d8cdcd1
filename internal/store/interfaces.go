package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Every lookup excludes inactive
// accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail loads the PasswordHash only when withPassword is set.
	FindUserByEmail(ctx context.Context, email string, withPassword bool) (models.User, error)
	FindUserByID(ctx context.Context, userID int64, withPassword bool) (models.User, error)
	// FindUserByResetToken matches a stored reset hash whose expiry is after now.
	FindUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// SetResetToken stores hash and expiry in a single write.
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	// ClearResetToken removes hash and expiry in a single write.
	ClearResetToken(ctx context.Context, userID int64) error
	// ResetPassword sets the new hash, the change time and clears the reset
	// fields, guarded by the token hash still matching and not being expired.
	ResetPassword(ctx context.Context, userID int64, tokenHash, passwordHash string, changedAt, now time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string, changedAt time.Time) error
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	Deactivate(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
	// ClearExpiredResetTokens clears every reset token that expired at or
	// before now and returns how many were cleared.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type TourRepository interface {
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, tourID int64) (models.Tour, error)
	CreateTour(ctx context.Context, tour models.Tour) (models.Tour, error)
	DeleteTour(ctx context.Context, tourID int64) error
}

type ReviewRepository interface {
	ListReviewsByTour(ctx context.Context, tourID int64) ([]models.Review, error)
	// CreateReview inserts the review and refreshes the tour's rating
	// aggregates in the same transaction.
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
}

type BookingRepository interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (models.Booking, error)
	FindBookingBySession(ctx context.Context, sessionID string) (models.Booking, error)
	// CreateBooking fails with ErrDuplicateBookingSession when booking.SessionID
	// was already recorded.
	CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int64, update models.BookingUpdate) (models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
