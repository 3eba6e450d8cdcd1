// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// routeNotFound is registered both as the router's NotFound and
// MethodNotAllowed handler: an unsupported method on a known path is answered
// with 404, exactly like an unknown path.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, ErrRouteNotFound)
}
