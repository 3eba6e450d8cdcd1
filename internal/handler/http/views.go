package http

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/flosch/pongo2/v6"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// views holds the compiled server-rendered pages.
type views struct {
	overview  *pongo2.Template
	login     *pongo2.Template
	account   *pongo2.Template
	errorPage *pongo2.Template
}

func loadViews() (*views, error) {
	v := &views{}
	for name, dst := range map[string]**pongo2.Template{
		"overview.html": &v.overview,
		"login.html":    &v.login,
		"account.html":  &v.account,
		"error.html":    &v.errorPage,
	} {
		src, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}
		tpl, err := pongo2.FromBytes(src)
		if err != nil {
			return nil, fmt.Errorf("compiling template %s: %w", name, err)
		}
		*dst = tpl
	}
	return v, nil
}

// render executes tpl with the optional identity of the request merged into
// data. Rendering failures fall back to a plain 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, tpl *pongo2.Template, status int, data pongo2.Context) {
	if data == nil {
		data = pongo2.Context{}
	}
	if user, ok := utils.UserFromContext(r.Context()); ok {
		data["user"] = user
		data["loggedIn"] = true
	}

	body, err := tpl.ExecuteBytes(data)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("rendering template failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, h.views.errorPage, status, pongo2.Context{
		"status":  status,
		"message": message,
	})
}

func (h *Handler) getOverview(w http.ResponseWriter, r *http.Request) {
	tours, err := h.services.TourService.ListTours(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.render(w, r, h.views.overview, http.StatusOK, pongo2.Context{"tours": tours})
}

func (h *Handler) getLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.views.login, http.StatusOK, nil)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.views.account, http.StatusOK, nil)
}

// checkoutSuccess is where the payment provider sends the user back after a
// checkout. The booking is recorded before the redirect to the account page.
func (h *Handler) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.ConfirmCheckout(r.Context(), r.URL.Query().Get("session_id"), current)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("booking_id", booking.ID).Msg("booking confirmed")
	http.Redirect(w, r, "/me", http.StatusSeeOther)
}
