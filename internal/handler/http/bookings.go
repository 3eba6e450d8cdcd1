package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// getCheckoutSession opens a hosted payment session for the current user and
// the tour in the path. The client redirects to the returned session URL.
func (h *Handler) getCheckoutSession(w http.ResponseWriter, r *http.Request) {
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

	session, err := h.services.BookingService.CreateCheckoutSession(r.Context(), tourID, current, utils.BaseURL(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("session", session), http.StatusOK)
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.services.BookingService.ListBookings(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewListResponse("bookings", bookings), http.StatusOK)
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("booking", booking), http.StatusCreated)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("booking", booking), http.StatusOK)
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateBookingRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.UpdateBooking(r.Context(), bookingID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("booking", booking), http.StatusOK)
}

func (h *Handler) deleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.BookingService.DeleteBooking(r.Context(), bookingID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
