package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tours/internal/service"
)

// errorStatusMap lists the operational errors. Their message is safe to show
// to the client; any error not listed here is a fault.
var errorStatusMap = map[error]int{
	service.ErrMissingCredentials: http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,

	service.ErrNoToken:            http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrUserGone:           http.StatusUnauthorized,
	service.ErrCredentialsRotated: http.StatusUnauthorized,
	service.ErrForbidden:          http.StatusForbidden,

	service.ErrInvalidOrExpiredToken: http.StatusBadRequest,
	service.ErrValidationFailed:      http.StatusBadRequest,
	service.ErrDispatchFailed:        http.StatusInternalServerError,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrResetAttemptFailed:    http.StatusInternalServerError,

	service.ErrWrongCurrentPassword:     http.StatusUnauthorized,
	service.ErrEmailTaken:               http.StatusConflict,
	service.ErrPasswordUpdateNotAllowed: http.StatusBadRequest,

	service.ErrUserIDNotFound:     http.StatusNotFound,
	service.ErrTourNotFound:       http.StatusNotFound,
	service.ErrTourNameTaken:      http.StatusConflict,
	service.ErrAlreadyReviewed:    http.StatusConflict,
	service.ErrReferenceNotFound:  http.StatusBadRequest,
	service.ErrPaymentUnavailable: http.StatusServiceUnavailable,

	service.ErrBookingNotFound:        http.StatusNotFound,
	service.ErrInvalidCheckoutSession: http.StatusBadRequest,
	service.ErrCheckoutNotPaid:        http.StatusPaymentRequired,

	ErrInvalidJSON:     http.StatusBadRequest,
	ErrInvalidID:       http.StatusBadRequest,
	ErrRouteNotFound:   http.StatusNotFound,
	ErrTooManyRequests: http.StatusTooManyRequests,
}

// statusFromError returns the HTTP status for err and the operational error
// it matched. A nil target means err is a fault and maps to 500.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}
