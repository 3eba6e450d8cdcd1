// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

const (
	sessionCookieName = "jwt"

	// loggedOutValue overwrites the session cookie on logout. It never
	// parses as a token, so the next request is anonymous.
	loggedOutValue = "loggedout"
	loggedOutTTL   = 10 * time.Second
)

// sendToken delivers token both in the JSON body and as the session cookie.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, token models.Token, status int) {
	h.setSessionCookie(w, r, token.SignedString, h.app.CookieDuration)

	h.writeJSON(w, r, models.Response{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		Data:   map[string]any{"user": user},
	}, status)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, r, loggedOutValue, loggedOutTTL)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, r *http.Request, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  h.now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.app.IsProduction() || utils.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// tokenFromRequest reads the session token from the Authorization header
// first and falls back to the session cookie. It returns "" when neither
// carries one.
func tokenFromRequest(r *http.Request) string {
	if token, ok := utils.ParseBearerToken(r.Header.Get("Authorization")); ok {
		return token
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
