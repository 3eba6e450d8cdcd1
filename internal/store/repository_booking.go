package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/jackc/pgerrcode"
)

type bookingRepository struct {
	*DB
	logger *logger.Logger
}

func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	return &bookingRepository{DB: db, logger: logger}
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b         models.Booking
		sessionID sql.NullString
	)
	err := row.Scan(&b.ID, &b.TourID, &b.UserID, &b.Price, &b.Paid, &sessionID, &b.CreatedAt)
	b.SessionID = sessionID.String
	return b, err
}

func (r *bookingRepository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	query, args, err := buildListBookingsQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookingRepository.ListBookings").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0, 16)
	for rows.Next() {
		booking, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bookings, nil
}

func (r *bookingRepository) GetBooking(ctx context.Context, bookingID int64) (models.Booking, error) {
	query, args, err := buildGetBookingQuery(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	return r.findOne(ctx, "bookingRepository.GetBooking", query, args)
}

func (r *bookingRepository) FindBookingBySession(ctx context.Context, sessionID string) (models.Booking, error) {
	query, args, err := buildFindBookingBySessionQuery(sessionID)
	if err != nil {
		return models.Booking{}, err
	}

	return r.findOne(ctx, "bookingRepository.FindBookingBySession", query, args)
}

func (r *bookingRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.Booking, error) {
	booking, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying booking")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return booking, nil
}

func (r *bookingRepository) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	query, args, err := buildInsertBookingQuery(booking)
	if err != nil {
		return models.Booking{}, err
	}

	created, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			logger.FromContext(ctx).Warn().Str("constraint", constraintName(err)).Msg("booking references a missing row")
			return models.Booking{}, ErrReferenceNotFound
		case pgerrcode.UniqueViolation:
			return models.Booking{}, ErrDuplicateBookingSession
		}
		logger.FromContext(ctx).Err(err).Str("func", "bookingRepository.CreateBooking").Msg("failed to insert booking")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

func (r *bookingRepository) UpdateBooking(ctx context.Context, bookingID int64, update models.BookingUpdate) (models.Booking, error) {
	query, args, err := buildUpdateBookingQuery(bookingID, update)
	if err != nil {
		return models.Booking{}, err
	}

	updated, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Booking{}, ErrBookingNotFound
	default:
		logger.FromContext(ctx).Err(err).Str("func", "bookingRepository.UpdateBooking").Int64("booking_id", bookingID).Msg("failed to update booking")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

func (r *bookingRepository) DeleteBooking(ctx context.Context, bookingID int64) error {
	query, args, err := buildDeleteBookingQuery(bookingID)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookingRepository.DeleteBooking").Int64("booking_id", bookingID).Msg("failed to delete booking")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
