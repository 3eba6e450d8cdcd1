package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func newTestUserSvc(t *testing.T) (UserService, *mock.MockUserRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(gomock.NewController(t))
	return NewUserService(users, logger.Nop()), users
}

func TestUserService_GetUser(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(7), false).Return(activeUser(), nil)
	users.EXPECT().FindUserByID(ctx, int64(8), false).Return(models.User{}, store.ErrNoUserWasFound)

	got, err := svc.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetUser(ctx, 8)
	assert.ErrorIs(t, err, ErrUserIDNotFound)
}

func TestUserService_UpdateMe_RejectsPasswordFields(t *testing.T) {
	svc, _ := newTestUserSvc(t)

	_, err := svc.UpdateMe(context.Background(), 7, models.UpdateMeRequest{Name: strPtr("Bob"), Password: "newpass123"})
	assert.ErrorIs(t, err, ErrPasswordUpdateNotAllowed)

	_, err = svc.UpdateMe(context.Background(), 7, models.UpdateMeRequest{PasswordConfirm: "newpass123"})
	assert.ErrorIs(t, err, ErrPasswordUpdateNotAllowed)
}

func TestUserService_UpdateMe_NormalizesEmail(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().UpdateProfile(ctx, int64(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, u models.ProfileUpdate) (models.User, error) {
			require.NotNil(t, u.Email)
			assert.Equal(t, "bob@example.com", *u.Email)
			assert.Nil(t, u.Name)
			user := activeUser()
			user.Email = *u.Email
			return user, nil
		})

	got, err := svc.UpdateMe(ctx, 7, models.UpdateMeRequest{Email: strPtr(" Bob@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestUserService_UpdateMe_EmptyUpdateReturnsCurrent(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(7), false).Return(activeUser(), nil)

	got, err := svc.UpdateMe(ctx, 7, models.UpdateMeRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestUserService_UpdateMe_EmailTaken(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().UpdateProfile(ctx, int64(7), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.UpdateMe(ctx, 7, models.UpdateMeRequest{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_UpdateUser_ChangesRole(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()
	role := models.RoleLeadGuide

	users.EXPECT().UpdateProfile(ctx, int64(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, u models.ProfileUpdate) (models.User, error) {
			require.NotNil(t, u.Role)
			assert.Equal(t, models.RoleLeadGuide, *u.Role)
			require.NotNil(t, u.Email)
			assert.Equal(t, "lead@example.com", *u.Email)
			user := activeUser()
			user.Role = *u.Role
			user.Email = *u.Email
			return user, nil
		})

	got, err := svc.UpdateUser(ctx, 7, models.UpdateUserRequest{Email: strPtr("Lead@Example.com "), Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLeadGuide, got.Role)
	assert.Empty(t, got.PasswordHash)
}

func TestUserService_UpdateUser_Errors(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, 7, models.UpdateUserRequest{Password: "newpass123"})
	assert.ErrorIs(t, err, ErrPasswordUpdateNotAllowed)

	unknown := models.Role("captain")
	_, err = svc.UpdateUser(ctx, 7, models.UpdateUserRequest{Role: &unknown})
	assert.ErrorIs(t, err, ErrValidationFailed)

	users.EXPECT().UpdateProfile(ctx, int64(404), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	_, err = svc.UpdateUser(ctx, 404, models.UpdateUserRequest{Name: strPtr("Bob")})
	assert.ErrorIs(t, err, ErrUserIDNotFound)

	users.EXPECT().FindUserByID(ctx, int64(7), false).Return(activeUser(), nil)
	got, err := svc.UpdateUser(ctx, 7, models.UpdateUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
}

func TestUserService_DeleteMe(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	users.EXPECT().Deactivate(ctx, int64(7)).Return(nil)
	users.EXPECT().Deactivate(ctx, int64(8)).Return(store.ErrNoUserWasFound)

	require.NoError(t, svc.DeleteMe(ctx, 7))
	assert.ErrorIs(t, svc.DeleteMe(ctx, 8), ErrUserGone)
}

func TestUserService_ListUsers_SanitizesEveryUser(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()

	token := "hash"
	u := activeUser()
	u.PasswordResetToken = &token
	users.EXPECT().ListUsers(ctx).Return([]models.User{u, activeUser()}, nil)

	got, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, user := range got {
		assert.Empty(t, user.PasswordHash)
		assert.Nil(t, user.PasswordResetToken)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, users := newTestUserSvc(t)
	ctx := context.Background()
	dbErr := errors.New("db down")

	users.EXPECT().DeleteUser(ctx, int64(1)).Return(nil)
	users.EXPECT().DeleteUser(ctx, int64(2)).Return(store.ErrNoUserWasFound)
	users.EXPECT().DeleteUser(ctx, int64(3)).Return(dbErr)

	assert.NoError(t, svc.DeleteUser(ctx, 1))
	assert.ErrorIs(t, svc.DeleteUser(ctx, 2), ErrUserIDNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, 3), dbErr)
}
