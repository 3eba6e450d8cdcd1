package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
)

var testTour = models.Tour{ID: 5, Name: "The Forest Hiker", Slug: "the-forest-hiker", Duration: 5, MaxGroupSize: 25, Difficulty: models.DifficultyEasy, Price: 397}

func TestListTours_Public(t *testing.T) {
	h, m := newTestHandler(t)
	m.tours.EXPECT().ListTours(gomock.Any()).Return([]models.Tour{testTour}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 1, *resp.Results)
	assert.Contains(t, rr.Body.String(), `"slug":"the-forest-hiker"`)
}

func TestGetTour_NotFound(t *testing.T) {
	h, m := newTestHandler(t)
	m.tours.EXPECT().GetTour(gomock.Any(), int64(404)).Return(models.Tour{}, service.ErrTourNotFound)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/tours/404", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateTour_RoleGate(t *testing.T) {
	body := models.CreateTourRequest{Name: "The Sea Explorer", Duration: 7, MaxGroupSize: 15, Difficulty: models.DifficultyMedium, Price: 497, Summary: "Exploring the jaw-dropping US east coast", ImageCover: "tour-2-cover.jpg"}

	tests := []struct {
		name       string
		user       models.User
		wantStatus int
	}{
		{name: "admin", user: testAdmin, wantStatus: http.StatusCreated},
		{name: "lead guide", user: models.User{UserID: 2, Email: "lead@example.com", Role: models.RoleLeadGuide}, wantStatus: http.StatusCreated},
		{name: "guide → 403", user: models.User{UserID: 3, Email: "guide@example.com", Role: models.RoleGuide}, wantStatus: http.StatusForbidden},
		{name: "user → 403", user: testUser, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.wantStatus == http.StatusCreated {
				m.tours.EXPECT().CreateTour(gomock.Any(), body).Return(testTour, nil)
			}

			rr := serve(h, authedRequest(t, m, tt.user, http.MethodPost, "/api/v1/tours", body))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCreateTour_Anonymous(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "").Return(models.User{}, service.ErrNoToken)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/tours", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeleteTour(t *testing.T) {
	h, m := newTestHandler(t)
	m.tours.EXPECT().DeleteTour(gomock.Any(), int64(5)).Return(nil)

	rr := serve(h, authedRequest(t, m, testAdmin, http.MethodDelete, "/api/v1/tours/5", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestListReviews(t *testing.T) {
	h, m := newTestHandler(t)
	m.reviews.EXPECT().ListReviews(gomock.Any(), int64(5)).Return([]models.Review{{ID: 1, Review: "Great", Rating: 5, TourID: 5, UserID: 11}}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/tours/5/reviews", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"reviews"`)
}

func TestCreateReview(t *testing.T) {
	body := models.CreateReviewRequest{Review: "Loved it", Rating: 5}

	t.Run("user role", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.reviews.EXPECT().CreateReview(gomock.Any(), int64(5), testUser.UserID, body).
			Return(models.Review{ID: 9, Review: "Loved it", Rating: 5, TourID: 5, UserID: testUser.UserID}, nil)

		rr := serve(h, authedRequest(t, m, testUser, http.MethodPost, "/api/v1/tours/5/reviews", body))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("admin is not a reviewer", func(t *testing.T) {
		h, m := newTestHandler(t)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodPost, "/api/v1/tours/5/reviews", body))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.reviews.EXPECT().CreateReview(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Review{}, service.ErrAlreadyReviewed)

		rr := serve(h, authedRequest(t, m, testUser, http.MethodPost, "/api/v1/tours/5/reviews", body))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
