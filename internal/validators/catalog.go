package validators

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MKhiriev/go-tours/models"
)

// Field names accepted by [CatalogValidator].
const (
	FieldTourName     = "name"
	FieldDuration     = "duration"
	FieldMaxGroupSize = "maxGroupSize"
	FieldDifficulty   = "difficulty"
	FieldPrice        = "price"
	FieldSummary      = "summary"
	FieldImageCover   = "imageCover"

	FieldReview = "review"
	FieldRating = "rating"

	FieldTourID = "tour"
	FieldUserID = "user"
	FieldPaid   = "paid"
)

// CatalogValidator checks tour, review and booking payloads.
type CatalogValidator struct{}

func NewCatalogValidator() Validator {
	return &CatalogValidator{}
}

func (v *CatalogValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateTourRequest:
		return v.validateTour(&value, fields...)
	case *models.CreateTourRequest:
		return v.validateTour(value, fields...)

	case models.CreateReviewRequest:
		return v.validateReview(&value, fields...)
	case *models.CreateReviewRequest:
		return v.validateReview(value, fields...)

	case models.CreateBookingRequest:
		return v.validateBooking(&value, fields...)
	case *models.CreateBookingRequest:
		return v.validateBooking(value, fields...)

	case models.UpdateBookingRequest:
		return v.validateBookingUpdate(&value, fields...)
	case *models.UpdateBookingRequest:
		return v.validateBookingUpdate(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CatalogValidator) validateTour(r *models.CreateTourRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldTourName:     validation.Field(&r.Name, validation.Required, validation.RuneLength(10, 40)),
		FieldDuration:     validation.Field(&r.Duration, validation.Required, validation.Min(1)),
		FieldMaxGroupSize: validation.Field(&r.MaxGroupSize, validation.Required, validation.Min(1)),
		FieldDifficulty: validation.Field(&r.Difficulty, validation.Required,
			validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyDifficult)),
		FieldPrice:      validation.Field(&r.Price, validation.Required, validation.Min(0.0)),
		FieldSummary:    validation.Field(&r.Summary, validation.Required),
		FieldImageCover: validation.Field(&r.ImageCover, is.PrintableASCII),
	}

	return validateScoped(r, rules,
		[]string{FieldTourName, FieldDuration, FieldMaxGroupSize, FieldDifficulty, FieldPrice, FieldSummary, FieldImageCover},
		fields)
}

func (v *CatalogValidator) validateReview(r *models.CreateReviewRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldReview: validation.Field(&r.Review, validation.Required),
		FieldRating: validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	}

	return validateScoped(r, rules, []string{FieldReview, FieldRating}, fields)
}

func (v *CatalogValidator) validateBooking(r *models.CreateBookingRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldTourID: validation.Field(&r.TourID, validation.Required, validation.Min(1)),
		FieldUserID: validation.Field(&r.UserID, validation.Required, validation.Min(1)),
		FieldPrice:  validation.Field(&r.Price, validation.Required, validation.Min(0.0)),
	}

	return validateScoped(r, rules, []string{FieldTourID, FieldUserID, FieldPrice}, fields)
}

func (v *CatalogValidator) validateBookingUpdate(r *models.UpdateBookingRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldPrice: validation.Field(&r.Price, validation.NilOrNotEmpty, validation.Min(0.01)),
		FieldPaid:  validation.Field(&r.Paid),
	}

	return validateScoped(r, rules, []string{FieldPrice, FieldPaid}, fields)
}
