package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type bookingService struct {
	bookingRepository store.BookingRepository
	tourRepository    store.TourRepository
	payment           adapter.PaymentAdapter
	validator         validators.Validator

	logger *logger.Logger
}

func NewBookingService(
	bookingRepository store.BookingRepository,
	tourRepository store.TourRepository,
	payment adapter.PaymentAdapter,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepository: bookingRepository,
		tourRepository:    tourRepository,
		payment:           payment,
		validator:         validators.NewCatalogValidator(),
		logger:            logger,
	}
}

// CreateCheckoutSession opens a hosted payment session for one seat of
// tourID, paid by user.
func (b *bookingService) CreateCheckoutSession(ctx context.Context, tourID int64, user models.User, baseURL string) (models.CheckoutSession, error) {
	tour, err := b.tourRepository.GetTour(ctx, tourID)
	if errors.Is(err, store.ErrTourNotFound) {
		return models.CheckoutSession{}, ErrTourNotFound
	}
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("tour search by id failed: %w", err)
	}

	session, err := b.payment.CreateCheckoutSession(ctx, models.CheckoutRequest{
		TourID:            tour.ID,
		TourName:          tour.Name + " Tour",
		Description:       tour.Summary,
		UnitAmountCents:   int64(math.Round(tour.Price * 100)),
		CustomerEmail:     user.Email,
		ClientReferenceID: models.CheckoutReference(tour.ID, user.UserID),
		SuccessURL:        baseURL + "/checkout-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         baseURL + "/",
	})
	if errors.Is(err, adapter.ErrPaymentNotConfigured) {
		return models.CheckoutSession{}, ErrPaymentUnavailable
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("tour_id", tourID).Msg("checkout session creation failed")
		return models.CheckoutSession{}, fmt.Errorf("checkout session creation failed: %w", err)
	}

	return session, nil
}

func (b *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := b.bookingRepository.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings failed: %w", err)
	}
	return bookings, nil
}

func (b *bookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.Booking, error) {
	if err := b.validator.Validate(ctx, req); err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	created, err := b.bookingRepository.CreateBooking(ctx, models.Booking{
		TourID: req.TourID,
		UserID: req.UserID,
		Price:  req.Price,
		Paid:   true,
	})
	if errors.Is(err, store.ErrReferenceNotFound) {
		return models.Booking{}, ErrReferenceNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking creation failed: %w", err)
	}
	return created, nil
}

// ConfirmCheckout turns a paid checkout session into a booking for user.
// Confirming the same session twice returns the booking created the first
// time.
func (b *bookingService) ConfirmCheckout(ctx context.Context, sessionID string, user models.User) (models.Booking, error) {
	log := logger.FromContext(ctx).With().Str("session_id", sessionID).Logger()

	if sessionID == "" {
		return models.Booking{}, ErrInvalidCheckoutSession
	}

	existing, err := b.bookingRepository.FindBookingBySession(ctx, sessionID)
	if err == nil {
		if existing.UserID != user.UserID {
			return models.Booking{}, ErrInvalidCheckoutSession
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrBookingNotFound) {
		return models.Booking{}, fmt.Errorf("booking search by session failed: %w", err)
	}

	session, err := b.payment.GetCheckoutSession(ctx, sessionID)
	switch {
	case errors.Is(err, adapter.ErrPaymentNotConfigured):
		return models.Booking{}, ErrPaymentUnavailable
	case errors.Is(err, adapter.ErrNotFound):
		return models.Booking{}, ErrInvalidCheckoutSession
	case err != nil:
		log.Err(err).Msg("checkout session lookup failed")
		return models.Booking{}, fmt.Errorf("checkout session lookup failed: %w", err)
	}

	tourID, userID, err := models.ParseCheckoutReference(session.ClientReferenceID)
	if err != nil || userID != user.UserID {
		log.Warn().Int64("user_id", user.UserID).Str("reference", session.ClientReferenceID).Msg("checkout session reference mismatch")
		return models.Booking{}, ErrInvalidCheckoutSession
	}
	if !session.IsPaid() {
		return models.Booking{}, ErrCheckoutNotPaid
	}

	created, err := b.bookingRepository.CreateBooking(ctx, models.Booking{
		TourID:    tourID,
		UserID:    userID,
		Price:     float64(session.AmountTotalCents) / 100,
		Paid:      true,
		SessionID: sessionID,
	})
	switch {
	case err == nil:
		log.Info().Int64("booking_id", created.ID).Int64("tour_id", tourID).Msg("checkout confirmed")
		return created, nil
	case errors.Is(err, store.ErrDuplicateBookingSession):
		// a concurrent confirmation won the insert
		existing, err = b.bookingRepository.FindBookingBySession(ctx, sessionID)
		if err != nil {
			return models.Booking{}, fmt.Errorf("booking search by session failed: %w", err)
		}
		return existing, nil
	case errors.Is(err, store.ErrReferenceNotFound):
		return models.Booking{}, ErrReferenceNotFound
	default:
		return models.Booking{}, fmt.Errorf("booking creation failed: %w", err)
	}
}

func (b *bookingService) GetBooking(ctx context.Context, bookingID int64) (models.Booking, error) {
	booking, err := b.bookingRepository.GetBooking(ctx, bookingID)
	if errors.Is(err, store.ErrBookingNotFound) {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking search by id failed: %w", err)
	}
	return booking, nil
}

// UpdateBooking changes the price or paid flag of a booking. An empty request
// returns the booking unchanged.
func (b *bookingService) UpdateBooking(ctx context.Context, bookingID int64, req models.UpdateBookingRequest) (models.Booking, error) {
	if err := b.validator.Validate(ctx, req); err != nil {
		return models.Booking{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	update := models.BookingUpdate{Price: req.Price, Paid: req.Paid}
	if update.IsEmpty() {
		return b.GetBooking(ctx, bookingID)
	}

	updated, err := b.bookingRepository.UpdateBooking(ctx, bookingID, update)
	if errors.Is(err, store.ErrBookingNotFound) {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking update failed: %w", err)
	}
	return updated, nil
}

func (b *bookingService) DeleteBooking(ctx context.Context, bookingID int64) error {
	err := b.bookingRepository.DeleteBooking(ctx, bookingID)
	if errors.Is(err, store.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("booking deletion failed: %w", err)
	}
	return nil
}
