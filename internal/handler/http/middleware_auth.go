package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// Gate labels used for the auth outcome metric.
const (
	gateProtect    = "protect"
	gateIsLoggedIn = "is_logged_in"
	gateRestrictTo = "restrict_to"
)

// protect is an HTTP middleware that requires an authenticated user.
//
// The session token is taken from the "Authorization: Bearer" header or, when
// absent, from the "jwt" cookie and verified via
// [service.AuthService.Authenticate]. On success the resolved user is stored
// in the request context with [utils.WithUser].
//
// The middleware answers HTTP 401 Unauthorized when:
//   - no token is present ([service.ErrNoToken]);
//   - the token is malformed, forged or expired;
//   - the user no longer exists or is inactive ([service.ErrUserGone]);
//   - the password changed after the token was issued
//     ([service.ErrCredentialsRotated]).
//
// Infrastructure failures during the lookup are answered with 500.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := h.services.AuthService.Authenticate(ctx, tokenFromRequest(r))
		h.metrics.RecordAuth(gateProtect, authOutcome(err))
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("authentication failed")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// isLoggedIn runs the same checks as protect but never rejects: on any
// failure the request continues anonymously. It is used by views that only
// adapt to a logged-in user.
func (h *Handler) isLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" || token == loggedOutValue {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, token)
		h.metrics.RecordAuth(gateIsLoggedIn, authOutcome(err))
		if err != nil {
			if _, target := statusFromError(err); target == nil {
				logger.FromRequest(r).Warn().Err(err).Msg("optional authentication failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// restrictTo returns a middleware that only admits users whose role is one of
// roles. It must be mounted after protect.
//
// It panics when roles yields an empty set, so a misconfigured route fails
// while the router is built. A request reaching it without an identity is
// logged as a wiring fault and answered with 500.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := models.NewRoleSet(roles...)
	if allowed.IsEmpty() {
		panic(errEmptyRoleSet)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.UserFromContext(r.Context())
			if !ok {
				logger.FromRequest(r).Error().Err(errNoIdentity).Str("roles", allowed.String()).Msg("restrictTo mounted without protect")
				h.metrics.RecordAuth(gateRestrictTo, observability.AuthOutcomeError)
				h.writeError(w, r, errNoIdentity)
				return
			}

			if !allowed.Contains(user.Role) {
				h.metrics.RecordAuth(gateRestrictTo, observability.AuthOutcomeForbidden)
				h.writeError(w, r, service.ErrForbidden)
				return
			}

			h.metrics.RecordAuth(gateRestrictTo, observability.AuthOutcomeAuthorized)
			next.ServeHTTP(w, r)
		})
	}
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return observability.AuthOutcomeAuthorized
	case errors.Is(err, service.ErrNoToken):
		return observability.AuthOutcomeNoToken
	case errors.Is(err, service.ErrTokenExpired):
		return observability.AuthOutcomeTokenExpired
	case errors.Is(err, service.ErrInvalidToken):
		return observability.AuthOutcomeInvalidToken
	case errors.Is(err, service.ErrUserGone):
		return observability.AuthOutcomeUserGone
	case errors.Is(err, service.ErrCredentialsRotated):
		return observability.AuthOutcomeCredentialsRotated
	default:
		return observability.AuthOutcomeError
	}
}
