package service

import "errors"

// Authentication and authorization errors. Their messages are shown to the
// client as is.
var (
	ErrMissingCredentials = errors.New("please provide email and password")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrNoToken            = errors.New("you are not logged in, please log in to get access")
	ErrInvalidToken       = errors.New("invalid token, please log in again")
	ErrTokenExpired       = errors.New("your token has expired, please log in again")
	ErrUserGone           = errors.New("the user belonging to this token no longer exists")
	ErrCredentialsRotated = errors.New("user recently changed password, please log in again")
	ErrForbidden          = errors.New("you do not have permission to perform this action")

	ErrInvalidOrExpiredToken = errors.New("token is invalid or has expired")
	ErrValidationFailed      = errors.New("invalid input data")
	ErrDispatchFailed        = errors.New("there was an error sending the email, try again later")
	ErrUserNotFound          = errors.New("there is no user with that email address")
	ErrResetAttemptFailed    = errors.New("password reset failed, please request a new reset link")

	ErrWrongCurrentPassword     = errors.New("your current password is wrong")
	ErrEmailTaken               = errors.New("email is already in use")
	ErrPasswordUpdateNotAllowed = errors.New("this route is not for password updates, please use /updateMyPassword")
)

// Catalogue errors.
var (
	ErrUserIDNotFound     = errors.New("no user found with that ID")
	ErrTourNotFound       = errors.New("no tour found with that ID")
	ErrTourNameTaken      = errors.New("a tour with that name already exists")
	ErrAlreadyReviewed    = errors.New("you have already reviewed this tour")
	ErrReferenceNotFound  = errors.New("referenced tour or user does not exist")
	ErrPaymentUnavailable = errors.New("online payment is currently unavailable")

	ErrBookingNotFound        = errors.New("no booking found with that ID")
	ErrInvalidCheckoutSession = errors.New("checkout session is unknown or does not belong to you")
	ErrCheckoutNotPaid        = errors.New("checkout session has not been paid")
)

var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
