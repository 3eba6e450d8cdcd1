package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/models"
)

// getServerVersion reports the deployed version, environment and build.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetAppInfo(r.Context())
	h.writeJSON(w, r, models.NewDataResponse("app", info), http.StatusOK)
}
