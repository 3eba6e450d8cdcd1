package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Signup(r.Context(), req, utils.BaseURL(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("id", user.UserID).Msg("user signed up")
	h.sendToken(w, r, user, token, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user successfully logged in")
	h.sendToken(w, r, user, token, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w, r)
	h.writeJSON(w, r, models.Response{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email, utils.BaseURL(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{
		Status:  models.StatusSuccess,
		Message: "token sent to email",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sendToken(w, r, user, token, http.StatusOK)
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.UpdatePassword(r.Context(), current, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sendToken(w, r, user, token, http.StatusOK)
}

// ── Self service ──

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), current.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("user", user), http.StatusOK)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateMeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateMe(r.Context(), current.UserID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("user", user), http.StatusOK)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	current, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.DeleteMe(r.Context(), current.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ── Administration ──

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewListResponse("users", users), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("user", user), http.StatusOK)
}

// createUser opens an account with any role. Unlike signup the caller stays
// logged in as themselves.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.CreateUser(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("user", user), http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateUserRequest
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.NewDataResponse("user", user), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
