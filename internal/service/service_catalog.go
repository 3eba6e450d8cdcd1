// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type tourService struct {
	tourRepository store.TourRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewTourService(tourRepository store.TourRepository, logger *logger.Logger) TourService {
	return &tourService{
		tourRepository: tourRepository,
		validator:      validators.NewCatalogValidator(),
		logger:         logger,
	}
}

func (t *tourService) ListTours(ctx context.Context) ([]models.Tour, error) {
	tours, err := t.tourRepository.ListTours(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tours failed: %w", err)
	}
	return tours, nil
}

func (t *tourService) GetTour(ctx context.Context, tourID int64) (models.Tour, error) {
	tour, err := t.tourRepository.GetTour(ctx, tourID)
	if errors.Is(err, store.ErrTourNotFound) {
		return models.Tour{}, ErrTourNotFound
	}
	if err != nil {
		return models.Tour{}, fmt.Errorf("tour search by id failed: %w", err)
	}
	return tour, nil
}

// CreateTour validates req and stores the tour under a slug derived from its
// name.
func (t *tourService) CreateTour(ctx context.Context, req models.CreateTourRequest) (models.Tour, error) {
	if err := t.validator.Validate(ctx, req); err != nil {
		return models.Tour{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	created, err := t.tourRepository.CreateTour(ctx, models.Tour{
		Name:         req.Name,
		Slug:         models.Slugify(req.Name),
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
		ImageCover:   req.ImageCover,
	})
	if errors.Is(err, store.ErrTourNameAlreadyExists) {
		return models.Tour{}, ErrTourNameTaken
	}
	if err != nil {
		return models.Tour{}, fmt.Errorf("tour creation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("tour_id", created.ID).Str("slug", created.Slug).Msg("tour created")
	return created, nil
}

func (t *tourService) DeleteTour(ctx context.Context, tourID int64) error {
	err := t.tourRepository.DeleteTour(ctx, tourID)
	if errors.Is(err, store.ErrTourNotFound) {
		return ErrTourNotFound
	}
	if err != nil {
		return fmt.Errorf("tour deletion failed: %w", err)
	}
	return nil
}

type reviewService struct {
	reviewRepository store.ReviewRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewReviewService(reviewRepository store.ReviewRepository, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		validator:        validators.NewCatalogValidator(),
		logger:           logger,
	}
}

func (r *reviewService) ListReviews(ctx context.Context, tourID int64) ([]models.Review, error) {
	reviews, err := r.reviewRepository.ListReviewsByTour(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("listing reviews failed: %w", err)
	}
	return reviews, nil
}

// CreateReview stores a review of tourID written by userID. A user can
// review a tour only once.
func (r *reviewService) CreateReview(ctx context.Context, tourID, userID int64, req models.CreateReviewRequest) (models.Review, error) {
	if err := r.validator.Validate(ctx, req); err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	created, err := r.reviewRepository.CreateReview(ctx, models.Review{
		Review: req.Review,
		Rating: req.Rating,
		TourID: tourID,
		UserID: userID,
	})
	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, store.ErrDuplicateReview):
		return models.Review{}, ErrAlreadyReviewed
	case errors.Is(err, store.ErrReferenceNotFound):
		return models.Review{}, ErrTourNotFound
	default:
		return models.Review{}, fmt.Errorf("review creation failed: %w", err)
	}
}
