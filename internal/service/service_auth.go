// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/crypto"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

// resetPasswordPath is the route the emailed reset link points to.
const resetPasswordPath = "/api/v1/users/resetPassword/"

// passwordChangeSkew backdates password_changed_at so that the token issued
// right after the change is not considered stale.
const passwordChangeSkew = time.Second

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification, the JWT token lifecycle and the
// password reset flows.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	passwordHasher crypto.PasswordHasher
	resetTokens    crypto.ResetTokenGenerator
	mail           adapter.MailAdapter
	validator      validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	passwordHasher crypto.PasswordHasher,
	resetTokens crypto.ResetTokenGenerator,
	mail adapter.MailAdapter,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		resetTokens:    resetTokens,
		mail:           mail,
		validator:      validators.NewUserValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a new account with role "user", sends the welcome email and
// logs the user in.
//
// A failed welcome email is logged and does not fail the signup.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest, baseURL string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	req.Email = models.NormalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	passwordHash, err := a.hashPassword(ctx, req.Password)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, models.Token{}, ErrEmailTaken
		}
		log.Err(err).Str("func", "authService.Signup").Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	welcome := models.Email{
		To:        created.Email,
		FirstName: created.FirstName(),
		Subject:   "Welcome to Go Tours!",
		Template:  models.EmailTemplateWelcome,
		URL:       baseURL + "/me",
	}
	if err = a.mail.Send(ctx, welcome); err != nil {
		log.Warn().Err(err).Int64("user_id", created.UserID).Msg("welcome email was not sent")
	}

	token, err := a.CreateToken(ctx, created)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return created.Sanitized(), token, nil
}

// CreateUser opens an account with an explicit role. Unlike Signup it neither
// sends the welcome email nor logs the new user in.
func (a *authService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	passwordHash, err := a.hashPassword(ctx, req.Password)
	if err != nil {
		return models.User{}, err
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: passwordHash,
		Active:       true,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateUser").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created.Sanitized(), nil
}

// Login authenticates a user by email and password.
//
// An unknown email and a wrong password produce the same
// ErrInvalidCredentials. For an unknown email a dummy comparison is still
// run so both paths take comparable time.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, models.Token{}, ErrMissingCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(req.Email), true)
	if errors.Is(err, store.ErrNoUserWasFound) {
		if dummyErr := a.passwordHasher.CompareDummy(ctx, req.Password); dummyErr != nil {
			log.Warn().Err(dummyErr).Msg("dummy password comparison failed")
		}
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := a.passwordHasher.Compare(ctx, user.PasswordHash, req.Password)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("password comparison failed")
		return models.User{}, models.Token{}, fmt.Errorf("password comparison failed: %w", err)
	}
	if !ok {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user.Sanitized(), token, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, ErrNoToken
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return models.User{}, ErrTokenExpired
		}
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.User{}, ErrInvalidToken
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID, false)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrUserGone
	}
	if err != nil {
		return models.User{}, fmt.Errorf("token owner lookup failed: %w", err)
	}

	if user.ChangedPasswordAfter(token.IssuedAtTime()) {
		return models.User{}, ErrCredentialsRotated
	}

	return user.Sanitized(), nil
}

// ForgotPassword stores a fresh reset token for the account and emails the
// reset link. When the email cannot be dispatched the token is cleared again
// and ErrDispatchFailed is returned.
func (a *authService) ForgotPassword(ctx context.Context, email, baseURL string) error {
	log := logger.FromContext(ctx)

	email = models.NormalizeEmail(email)
	if email == "" {
		return ErrUserNotFound
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email, false)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	resetToken, err := a.resetTokens.Generate()
	if err != nil {
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	if err = a.userRepository.SetResetToken(ctx, user.UserID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("storing reset token failed: %w", err)
	}

	err = a.mail.Send(ctx, models.Email{
		To:        user.Email,
		FirstName: user.FirstName(),
		Subject:   resetSubject(resetToken.ExpiresAt.Sub(a.now())),
		Template:  models.EmailTemplatePasswordReset,
		URL:       baseURL + resetPasswordPath + resetToken.Raw,
	})
	if err == nil {
		return nil
	}

	log.Err(err).Int64("user_id", user.UserID).Msg("reset email dispatch failed, clearing reset token")
	if clearErr := a.userRepository.ClearResetToken(context.WithoutCancel(ctx), user.UserID); clearErr != nil {
		log.Err(clearErr).Int64("user_id", user.UserID).Msg("clearing reset token after failed dispatch failed")
	}

	return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
}

// ResetPassword consumes a reset token and sets a new password in one guarded
// write, then logs the user in.
func (a *authService) ResetPassword(ctx context.Context, rawToken string, req models.ResetPasswordRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if rawToken == "" {
		return models.User{}, models.Token{}, ErrInvalidOrExpiredToken
	}

	now := a.now()
	tokenHash := crypto.HashResetToken(rawToken)

	user, err := a.userRepository.FindUserByResetToken(ctx, tokenHash, now)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, models.Token{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user search by reset token failed: %w", err)
	}

	if err = a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	passwordHash, err := a.hashPassword(ctx, req.Password)
	if err == nil {
		err = a.userRepository.ResetPassword(ctx, user.UserID, tokenHash, passwordHash, now.Add(-passwordChangeSkew), now)
	}
	switch {
	case err == nil:
	case errors.Is(err, store.ErrResetTokenNotMatched):
		return models.User{}, models.Token{}, ErrInvalidOrExpiredToken
	case errors.Is(err, ErrValidationFailed):
		return models.User{}, models.Token{}, err
	default:
		log.Err(err).Int64("user_id", user.UserID).Msg("password reset write failed, clearing reset token")
		if clearErr := a.userRepository.ClearResetToken(context.WithoutCancel(ctx), user.UserID); clearErr != nil {
			log.Err(clearErr).Int64("user_id", user.UserID).Msg("clearing reset token after failed reset failed")
		}
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrResetAttemptFailed, err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user.Sanitized(), token, nil
}

// UpdatePassword changes the password of an authenticated user after checking
// the current one, then issues a fresh token.
func (a *authService) UpdatePassword(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.User, models.Token, error) {
	found, err := a.userRepository.FindUserByID(ctx, user.UserID, true)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, models.Token{}, ErrUserGone
	}
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("user search by id failed: %w", err)
	}

	ok, err := a.passwordHasher.Compare(ctx, found.PasswordHash, req.PasswordCurrent)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("password comparison failed: %w", err)
	}
	if !ok {
		return models.User{}, models.Token{}, ErrWrongCurrentPassword
	}

	if err = a.validator.Validate(ctx, req, validators.FieldPassword, validators.FieldPasswordConfirm); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	passwordHash, err := a.hashPassword(ctx, req.Password)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if err = a.userRepository.UpdatePassword(ctx, found.UserID, passwordHash, a.now().Add(-passwordChangeSkew)); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrUserGone
		}
		return models.User{}, models.Token{}, fmt.Errorf("password update failed: %w", err)
	}

	token, err := a.CreateToken(ctx, found)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return found.Sanitized(), token, nil
}

func (a *authService) hashPassword(ctx context.Context, plain string) (string, error) {
	hash, err := a.passwordHasher.Hash(ctx, plain)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return hash, nil
}

func resetSubject(validFor time.Duration) string {
	minutes := int(validFor.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("Your password reset token (valid for %d minutes)", minutes)
}
