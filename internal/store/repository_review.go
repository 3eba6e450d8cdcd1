package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/jackc/pgerrcode"
)

type reviewRepository struct {
	*DB
	logger *logger.Logger
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	return &reviewRepository{DB: db, logger: logger}
}

func scanReview(row rowScanner) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.Review, &rv.Rating, &rv.TourID, &rv.UserID, &rv.CreatedAt)
	return rv, err
}

func (r *reviewRepository) ListReviewsByTour(ctx context.Context, tourID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListReviewsByTourQuery(tourID)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.ListReviewsByTour").Int64("tour_id", tourID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, 16)
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return reviews, nil
}

// CreateReview inserts the review and refreshes the rating aggregates of its
// tour inside one transaction.
func (r *reviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	insertQuery, insertArgs, err := buildInsertReviewQuery(review)
	if err != nil {
		return models.Review{}, err
	}
	refreshQuery, refreshArgs, err := buildRefreshTourRatingsQuery(review.TourID)
	if err != nil {
		return models.Review{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.CreateReview").Msg("failed to begin transaction")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	created, err := scanReview(tx.QueryRowContext(ctx, insertQuery, insertArgs...))
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Review{}, ErrDuplicateReview
		case pgerrcode.ForeignKeyViolation:
			return models.Review{}, ErrReferenceNotFound
		}
		log.Err(err).Str("func", "reviewRepository.CreateReview").Int64("tour_id", review.TourID).Msg("failed to insert review")
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, refreshQuery, refreshArgs...); err != nil {
		log.Err(err).Str("func", "reviewRepository.CreateReview").Int64("tour_id", review.TourID).Msg("failed to refresh tour ratings")
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}
