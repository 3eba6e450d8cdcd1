package service

import (
	"context"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns credentials: signup, login, token verification and the
// password reset flows. Every returned user has its credential fields
// stripped.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest, baseURL string) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// Authenticate verifies tokenString and resolves its current, active
	// owner. Failures are one of ErrNoToken, ErrInvalidToken,
	// ErrTokenExpired, ErrUserGone or ErrCredentialsRotated; anything else is
	// an infrastructure fault.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	ForgotPassword(ctx context.Context, email, baseURL string) error
	ResetPassword(ctx context.Context, rawToken string, req models.ResetPasswordRequest) (models.User, models.Token, error)
	UpdatePassword(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.User, models.Token, error)

	// CreateUser opens an account with the requested role on behalf of an
	// administrator. No token is issued and no email is sent.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateMe(ctx context.Context, userID int64, req models.UpdateMeRequest) (models.User, error)
	DeleteMe(ctx context.Context, userID int64) error

	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type TourService interface {
	ListTours(ctx context.Context) ([]models.Tour, error)
	GetTour(ctx context.Context, tourID int64) (models.Tour, error)
	CreateTour(ctx context.Context, req models.CreateTourRequest) (models.Tour, error)
	DeleteTour(ctx context.Context, tourID int64) error
}

type ReviewService interface {
	ListReviews(ctx context.Context, tourID int64) ([]models.Review, error)
	CreateReview(ctx context.Context, tourID, userID int64, req models.CreateReviewRequest) (models.Review, error)
}

type BookingService interface {
	CreateCheckoutSession(ctx context.Context, tourID int64, user models.User, baseURL string) (models.CheckoutSession, error)

	// ConfirmCheckout records the booking paid through sessionID. Confirming
	// the same session again returns the booking recorded the first time.
	ConfirmCheckout(ctx context.Context, sessionID string, user models.User) (models.Booking, error)

	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (models.Booking, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int64, req models.UpdateBookingRequest) (models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
