package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID, false)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserIDNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Sanitized(), nil
}

// UpdateMe changes the name and email of the user. Password fields are
// rejected with ErrPasswordUpdateNotAllowed.
func (u *userService) UpdateMe(ctx context.Context, userID int64, req models.UpdateMeRequest) (models.User, error) {
	if req.Password != "" || req.PasswordConfirm != "" {
		return models.User{}, ErrPasswordUpdateNotAllowed
	}

	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	update := models.ProfileUpdate{Name: req.Name, Email: req.Email}
	if update.IsEmpty() {
		return u.GetUser(ctx, userID)
	}

	updated, err := u.userRepository.UpdateProfile(ctx, userID, update)
	switch {
	case err == nil:
		return updated.Sanitized(), nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, ErrEmailTaken
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrUserGone
	default:
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}
}

// UpdateUser changes the name, email or role of any active user. Password
// fields are rejected with ErrPasswordUpdateNotAllowed.
func (u *userService) UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error) {
	if req.Password != "" || req.PasswordConfirm != "" {
		return models.User{}, ErrPasswordUpdateNotAllowed
	}

	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	update := models.ProfileUpdate{Name: req.Name, Email: req.Email, Role: req.Role}
	if update.IsEmpty() {
		return u.GetUser(ctx, userID)
	}

	updated, err := u.userRepository.UpdateProfile(ctx, userID, update)
	switch {
	case err == nil:
		return updated.Sanitized(), nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, ErrEmailTaken
	case errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, ErrUserIDNotFound
	default:
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}
}

// DeleteMe deactivates the account. The row is kept.
func (u *userService) DeleteMe(ctx context.Context, userID int64) error {
	err := u.userRepository.Deactivate(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserGone
	}
	if err != nil {
		return fmt.Errorf("deactivating user failed: %w", err)
	}
	return nil
}

func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

func (u *userService) DeleteUser(ctx context.Context, userID int64) error {
	err := u.userRepository.DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserIDNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting user failed: %w", err)
	}
	return nil
}
