package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutReference_RoundTrip(t *testing.T) {
	tourID, userID, err := ParseCheckoutReference(CheckoutReference(7, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(7), tourID)
	assert.Equal(t, int64(3), userID)
}

func TestParseCheckoutReference_Malformed(t *testing.T) {
	for _, ref := range []string{"", "7", "tour:7", "tour:7:user:", "tour:x:user:3", "tour:0:user:3", "user:3:tour:7", "tour:7:user:-1"} {
		t.Run(ref, func(t *testing.T) {
			_, _, err := ParseCheckoutReference(ref)
			assert.Error(t, err)
		})
	}
}

func TestCheckoutSession_IsPaid(t *testing.T) {
	assert.True(t, CheckoutSession{PaymentStatus: PaymentStatusPaid}.IsPaid())
	assert.False(t, CheckoutSession{PaymentStatus: "unpaid"}.IsPaid())
	assert.False(t, CheckoutSession{}.IsPaid())
}
