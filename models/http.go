package models

// LoginRequest carries credentials posted to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries the fields accepted when creating an account.
// Role is intentionally absent: every new account starts as [RoleUser].
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest finishes the password reset flow. The raw token is
// taken from the URL path, not from the body.
type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePasswordRequest changes the password of an authenticated user.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateMeRequest updates non-credential profile fields. Password fields are
// decoded only so they can be rejected explicitly.
type UpdateMeRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        string  `json:"password,omitempty"`
	PasswordConfirm string  `json:"passwordConfirm,omitempty"`
}

// CreateUserRequest is used by administrators to open an account with an
// explicit role.
type CreateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Role            Role   `json:"role"`
}

// UpdateUserRequest is the administrative counterpart of [UpdateMeRequest]
// that may also change the role.
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Role            *Role   `json:"role,omitempty"`
	Password        string  `json:"password,omitempty"`
	PasswordConfirm string  `json:"passwordConfirm,omitempty"`
}

// CreateTourRequest carries the fields required to create a tour.
type CreateTourRequest struct {
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	MaxGroupSize int     `json:"maxGroupSize"`
	Difficulty   string  `json:"difficulty"`
	Price        float64 `json:"price"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description"`
	ImageCover   string  `json:"imageCover"`
}

// CreateReviewRequest carries a review posted by a user for a tour.
type CreateReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

// CreateBookingRequest is used by staff to record a booking manually.
type CreateBookingRequest struct {
	TourID int64   `json:"tour"`
	UserID int64   `json:"user"`
	Price  float64 `json:"price"`
}

// UpdateBookingRequest corrects the price or payment state of a booking.
type UpdateBookingRequest struct {
	Price *float64 `json:"price,omitempty"`
	Paid  *bool    `json:"paid,omitempty"`
}
