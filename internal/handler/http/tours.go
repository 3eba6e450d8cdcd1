package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/models"
)

func (h *Handler) listTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.services.TourService.ListTours(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewListResponse("tours", tours), http.StatusOK)
}

func (h *Handler) getTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := pathID(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.GetTour(r.Context(), tourID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("tour", tour), http.StatusOK)
}

func (h *Handler) createTour(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTourRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.CreateTour(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("tour", tour), http.StatusCreated)
}

func (h *Handler) deleteTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := pathID(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.TourService.DeleteTour(r.Context(), tourID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ── Reviews ──

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	tourID, err := pathID(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reviews, err := h.services.ReviewService.ListReviews(r.Context(), tourID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewListResponse("reviews", reviews), http.StatusOK)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tourID, err := pathID(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.CreateReview(r.Context(), tourID, current.UserID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("review", review), http.StatusCreated)
}
