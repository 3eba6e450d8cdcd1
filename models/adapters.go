package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Email templates known to the mail provider.
const (
	EmailTemplateWelcome       = "welcome"
	EmailTemplatePasswordReset = "password-reset"
)

// PaymentStatusPaid is the payment status of a checkout session whose funds
// were captured.
const PaymentStatusPaid = "paid"

// Email is a transactional message handed to the mail adapter.
type Email struct {
	To        string
	FirstName string
	Subject   string
	Template  string
	URL       string
}

// CheckoutRequest describes a hosted payment session for a single tour.
type CheckoutRequest struct {
	TourID            int64
	TourName          string
	Description       string
	UnitAmountCents   int64
	Currency          string
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
}

// CheckoutSession is the payment provider's answer to a [CheckoutRequest].
// The payment fields are only filled when a session is looked up after the
// customer returned from the provider.
type CheckoutSession struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	PaymentStatus     string `json:"payment_status,omitempty"`
	ClientReferenceID string `json:"client_reference_id,omitempty"`
	AmountTotalCents  int64  `json:"amount_total,omitempty"`
}

// IsPaid reports whether the provider captured the payment.
func (s CheckoutSession) IsPaid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// CheckoutReference encodes the tour and the paying user into the client
// reference of a checkout session.
func CheckoutReference(tourID, userID int64) string {
	return fmt.Sprintf("tour:%d:user:%d", tourID, userID)
}

// ParseCheckoutReference is the inverse of [CheckoutReference].
func ParseCheckoutReference(ref string) (tourID, userID int64, err error) {
	parts := strings.Split(ref, ":")
	if len(parts) != 4 || parts[0] != "tour" || parts[2] != "user" {
		return 0, 0, fmt.Errorf("malformed checkout reference %q", ref)
	}

	if tourID, err = strconv.ParseInt(parts[1], 10, 64); err != nil || tourID < 1 {
		return 0, 0, fmt.Errorf("malformed tour id in checkout reference %q", ref)
	}
	if userID, err = strconv.ParseInt(parts[3], 10, 64); err != nil || userID < 1 {
		return 0, 0, fmt.Errorf("malformed user id in checkout reference %q", ref)
	}
	return tourID, userID, nil
}
