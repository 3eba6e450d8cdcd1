// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

type tourRepository struct {
	*DB
	logger *logger.Logger
}

func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	return &tourRepository{DB: db, logger: logger}
}

func scanTour(row rowScanner) (models.Tour, error) {
	var t models.Tour
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Duration, &t.MaxGroupSize, &t.Difficulty,
		&t.RatingsAverage, &t.RatingsQuantity, &t.Price, &t.Summary, &t.Description,
		&t.ImageCover, &t.CreatedAt,
	)
	return t, err
}

func (r *tourRepository) ListTours(ctx context.Context) ([]models.Tour, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListToursQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "tourRepository.ListTours").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tours := make([]models.Tour, 0, 16)
	for rows.Next() {
		tour, scanErr := scanTour(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "tourRepository.ListTours").Msg("failed to scan tour row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tours = append(tours, tour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tours, nil
}

func (r *tourRepository) GetTour(ctx context.Context, tourID int64) (models.Tour, error) {
	query, args, err := buildGetTourQuery(tourID)
	if err != nil {
		return models.Tour{}, err
	}

	tour, err := scanTour(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tour{}, ErrTourNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tourRepository.GetTour").Int64("tour_id", tourID).Msg("failed to get tour")
		return models.Tour{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return tour, nil
}

func (r *tourRepository) CreateTour(ctx context.Context, tour models.Tour) (models.Tour, error) {
	query, args, err := buildInsertTourQuery(tour)
	if err != nil {
		return models.Tour{}, err
	}

	created, err := scanTour(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Tour{}, ErrTourNameAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "tourRepository.CreateTour").Msg("failed to insert tour")
		return models.Tour{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// DeleteTour removes the tour; its reviews and bookings are removed by the
// ON DELETE CASCADE foreign keys.
func (r *tourRepository) DeleteTour(ctx context.Context, tourID int64) error {
	query, args, err := buildDeleteTourQuery(tourID)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tourRepository.DeleteTour").Int64("tour_id", tourID).Msg("failed to delete tour")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTourNotFound
	}
	return nil
}
