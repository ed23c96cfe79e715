package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldsInventory(t *testing.T) {
	assert.True(t, Booking{Status: BookingPending}.HoldsInventory())
	assert.True(t, Booking{Status: BookingConfirmed}.HoldsInventory())
	assert.False(t, Booking{Status: BookingCancelled}.HoldsInventory())
	assert.False(t, Booking{Status: BookingExpired}.HoldsInventory())
}

func TestHoldLapsed(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	// The expiry sweep flips exactly the bookings this reports true for.
	assert.True(t, Booking{Status: BookingPending, HoldExpiresAt: &past}.HoldLapsed(now))
	assert.False(t, Booking{Status: BookingPending, HoldExpiresAt: &future}.HoldLapsed(now))
	assert.False(t, Booking{Status: BookingPending}.HoldLapsed(now), "no expiry means no lapse")
	assert.False(t, Booking{Status: BookingConfirmed, HoldExpiresAt: &past}.HoldLapsed(now),
		"confirmed bookings hold inventory regardless of the old hold timestamp")
	assert.False(t, Booking{Status: BookingExpired, HoldExpiresAt: &past}.HoldLapsed(now))
}
