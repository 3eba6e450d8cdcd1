package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 10 << 10

const genericFaultMessage = "something went very wrong"

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, resp any, status int) {
	if _, err := utils.WriteJSON(w, resp, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}

// writeError answers err in the format of the requested surface: a JSON
// envelope under /api and an error page everywhere else.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, resp := h.errorResponse(err)

	if resp.Status == models.StatusError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if !isAPIRequest(r) {
		h.renderError(w, r, status, resp.Message)
		return
	}
	h.writeJSON(w, r, resp, status)
}

// errorResponse builds the envelope for err. Operational errors expose their
// own message; faults expose a generic one in production and the full error
// text in development.
func (h *Handler) errorResponse(err error) (int, models.Response) {
	status, target := statusFromError(err)

	resp := models.Response{Status: models.StatusFail}
	if status >= http.StatusInternalServerError {
		resp.Status = models.StatusError
	}

	switch {
	case target == nil && h.app.IsProduction():
		resp.Message = genericFaultMessage
	case target == nil:
		resp.Message = err.Error()
	case errors.Is(target, service.ErrValidationFailed):
		// validation failures carry the offending fields
		resp.Message = err.Error()
	default:
		resp.Message = target.Error()
	}

	if !h.app.IsProduction() {
		resp.Detail = err.Error()
	}
	return status, resp
}

func isAPIRequest(r *http.Request) bool {
	return r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// pathID reads a positive numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// currentUser returns the identity attached by protect. Handlers behind
// protect treat a missing identity as a wiring fault.
func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.UserFromContext(r.Context())
	if !ok {
		return models.User{}, errNoIdentity
	}
	return user, nil
}
