package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
)

var (
	testUser  = models.User{UserID: 11, Name: "Jonas Doe", Email: "jonas@example.com", Role: models.RoleUser}
	testAdmin = models.User{UserID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: models.RoleAdmin}
)

// authedRequest builds a request carrying a bearer token that m resolves to
// user.
func authedRequest(t *testing.T, m *serviceMocks, user models.User, method, path string, body any) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer token-of-"+user.Email)
	m.auth.EXPECT().Authenticate(gomock.Any(), "token-of-"+user.Email).Return(user, nil)
	return req
}

func TestSignup(t *testing.T) {
	h, m := newTestHandler(t)

	body := models.SignupRequest{Name: "Jonas Doe", Email: "jonas@example.com", Password: "pass1234", PasswordConfirm: "pass1234"}
	m.auth.EXPECT().
		Signup(gomock.Any(), body, "http://example.com").
		Return(testUser, models.Token{SignedString: "fresh"}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", jsonBody(t, body)))

	require.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Equal(t, "fresh", resp.Token)
	assert.Contains(t, rr.Body.String(), `"email":"jonas@example.com"`)
	require.NotNil(t, findCookie(rr, sessionCookieName))
	assert.Equal(t, "fresh", findCookie(rr, sessionCookieName).Value)
}

func TestSignup_EmailTaken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Signup(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Token{}, service.ErrEmailTaken)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", jsonBody(t, models.SignupRequest{})))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Nil(t, findCookie(rr, sessionCookieName))
}

func TestLogin_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		expectCall bool
		wantStatus int
		wantCookie bool
	}{
		{
			name:       "success",
			body:       `{"email":"jonas@example.com","password":"pass1234"}`,
			expectCall: true,
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name:       "missing credentials → 400",
			body:       `{"email":""}`,
			loginErr:   service.ErrMissingCredentials,
			expectCall: true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong password → 401",
			body:       `{"email":"jonas@example.com","password":"nope"}`,
			loginErr:   service.ErrInvalidCredentials,
			expectCall: true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid json → 400",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.expectCall {
				user, token := testUser, models.Token{SignedString: "signed"}
				if tt.loginErr != nil {
					user, token = models.User{}, models.Token{}
				}
				m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(user, token, tt.loginErr)
			}

			rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCookie, findCookie(rr, sessionCookieName) != nil)
		})
	}
}

func TestLogin_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, service.ErrInvalidCredentials).Times(2)

	unknown := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"email":"ghost@example.com","password":"x"}`)))
	wrong := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"email":"jonas@example.com","password":"x"}`)))

	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, decodeResponse(t, unknown).Message, decodeResponse(t, wrong).Message)
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/users/logout", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := findCookie(rr, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, loggedOutValue, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "sent", wantStatus: http.StatusOK},
		{name: "unknown email → 404", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "dispatch failed → 500", err: service.ErrDispatchFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().ForgotPassword(gomock.Any(), "jonas@example.com", "https://tours.example.com").Return(tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/forgotPassword", strings.NewReader(`{"email":"jonas@example.com"}`))
			req.Host = "tours.example.com"
			req.Header.Set("X-Forwarded-Proto", "https")
			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCookie bool
	}{
		{name: "success logs the user in", wantStatus: http.StatusOK, wantCookie: true},
		{name: "invalid or expired token → 400", err: service.ErrInvalidOrExpiredToken, wantStatus: http.StatusBadRequest},
		{name: "policy failure → 400", err: service.ErrValidationFailed, wantStatus: http.StatusBadRequest},
		{name: "write failed → 500", err: service.ErrResetAttemptFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			req := models.ResetPasswordRequest{Password: "newpass123", PasswordConfirm: "newpass123"}

			user, token := testUser, models.Token{SignedString: "after-reset"}
			if tt.err != nil {
				user, token = models.User{}, models.Token{}
			}
			m.auth.EXPECT().ResetPassword(gomock.Any(), "a1b2c3", req).Return(user, token, tt.err)

			rr := serve(h, httptest.NewRequest(http.MethodPatch, "/api/v1/users/resetPassword/a1b2c3", jsonBody(t, req)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCookie, findCookie(rr, sessionCookieName) != nil)
		})
	}
}

func TestUpdateMyPassword(t *testing.T) {
	h, m := newTestHandler(t)
	body := models.UpdatePasswordRequest{PasswordCurrent: "pass1234", Password: "newpass123", PasswordConfirm: "newpass123"}

	req := authedRequest(t, m, testUser, http.MethodPatch, "/api/v1/users/updateMyPassword", body)
	m.auth.EXPECT().UpdatePassword(gomock.Any(), testUser, body).Return(testUser, models.Token{SignedString: "rotated"}, nil)

	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rotated", decodeResponse(t, rr).Token)
}

func TestUpdateMyPassword_WrongCurrent(t *testing.T) {
	h, m := newTestHandler(t)

	req := authedRequest(t, m, testUser, http.MethodPatch, "/api/v1/users/updateMyPassword", models.UpdatePasswordRequest{})
	m.auth.EXPECT().UpdatePassword(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, service.ErrWrongCurrentPassword)

	rr := serve(h, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateMyPassword_RequiresLogin(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "").Return(models.User{}, service.ErrNoToken)

	rr := serve(h, httptest.NewRequest(http.MethodPatch, "/api/v1/users/updateMyPassword", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe(t *testing.T) {
	h, m := newTestHandler(t)

	req := authedRequest(t, m, testUser, http.MethodGet, "/api/v1/users/me", nil)
	m.users.EXPECT().GetUser(gomock.Any(), testUser.UserID).Return(testUser, nil)

	rr := serve(h, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Jonas Doe"`)
}

func TestUpdateMe_RejectsPassword(t *testing.T) {
	h, m := newTestHandler(t)

	body := models.UpdateMeRequest{Password: "sneaky123"}
	req := authedRequest(t, m, testUser, http.MethodPatch, "/api/v1/users/updateMe", body)
	m.users.EXPECT().UpdateMe(gomock.Any(), testUser.UserID, body).Return(models.User{}, service.ErrPasswordUpdateNotAllowed)

	rr := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, service.ErrPasswordUpdateNotAllowed.Error(), decodeResponse(t, rr).Message)
}

func TestDeleteMe(t *testing.T) {
	h, m := newTestHandler(t)

	req := authedRequest(t, m, testUser, http.MethodDelete, "/api/v1/users/deleteMe", nil)
	m.users.EXPECT().DeleteMe(gomock.Any(), testUser.UserID).Return(nil)

	rr := serve(h, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestAdminUsers_Forbidden(t *testing.T) {
	h, m := newTestHandler(t)

	rr := serve(h, authedRequest(t, m, testUser, http.MethodGet, "/api/v1/users", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminUsers(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{testAdmin, testUser}, nil)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodGet, "/api/v1/users", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		require.NotNil(t, resp.Results)
		assert.Equal(t, 2, *resp.Results)
	})

	t.Run("get unknown", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().GetUser(gomock.Any(), int64(99)).Return(models.User{}, service.ErrUserIDNotFound)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodGet, "/api/v1/users/99", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("get with invalid id", func(t *testing.T) {
		h, m := newTestHandler(t)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodGet, "/api/v1/users/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create guide", func(t *testing.T) {
		h, m := newTestHandler(t)
		body := models.CreateUserRequest{
			Name: "Steven Miller", Email: "steven@example.com", Password: "pass1234", PasswordConfirm: "pass1234", Role: models.RoleGuide,
		}
		m.auth.EXPECT().CreateUser(gomock.Any(), body).
			Return(models.User{UserID: 12, Name: "Steven Miller", Email: "steven@example.com", Role: models.RoleGuide}, nil)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodPost, "/api/v1/users", body))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"role":"guide"`)
		assert.Empty(t, rr.Result().Cookies(), "admin session must not be replaced")
	})

	t.Run("promote", func(t *testing.T) {
		h, m := newTestHandler(t)
		role := models.RoleLeadGuide
		body := models.UpdateUserRequest{Role: &role}
		promoted := testUser
		promoted.Role = models.RoleLeadGuide
		m.users.EXPECT().UpdateUser(gomock.Any(), int64(11), body).Return(promoted, nil)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodPatch, "/api/v1/users/11", body))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"role":"lead-guide"`)
	})

	t.Run("update unknown", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().UpdateUser(gomock.Any(), int64(99), gomock.Any()).Return(models.User{}, service.ErrUserIDNotFound)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodPatch, "/api/v1/users/99", models.UpdateUserRequest{Name: new(string)}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.users.EXPECT().DeleteUser(gomock.Any(), int64(11)).Return(nil)

		rr := serve(h, authedRequest(t, m, testAdmin, http.MethodDelete, "/api/v1/users/11", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
