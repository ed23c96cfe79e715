package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/hospitality-booking/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayNights(t *testing.T) {
	// Two nights for a Fri-Sun stay.
	assert.Equal(t, 2, stayNights(date(2026, 9, 4), date(2026, 9, 6)))
	// Single-day bookings (dining, events) bill as one night.
	assert.Equal(t, 1, stayNights(date(2026, 9, 4), date(2026, 9, 5)))
}

func TestNewReference(t *testing.T) {
	ref := newReference()
	assert.True(t, strings.HasPrefix(ref, "BK-"))
	assert.Len(t, ref, 11)
	assert.Equal(t, strings.ToUpper(ref), ref)

	// Two references must not collide.
	assert.NotEqual(t, ref, newReference())
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "120.00", formatMoney(12000))
	assert.Equal(t, "0.05", formatMoney(5))
	assert.Equal(t, "1234.56", formatMoney(123456))
}

func TestTotalCents(t *testing.T) {
	total, ok := totalCents(12000, 2, 3)
	require.True(t, ok)
	assert.Equal(t, uint32(72000), total)

	// A month in thirty 50,000.00 units overflows uint32; naive 32-bit
	// multiplication would wrap to roughly 2.05M instead of 4.5B.
	_, ok = totalCents(5_000_000, 30, 30)
	assert.False(t, ok)

	// Right at the storable ceiling.
	total, ok = totalCents(1<<32-1, 1, 1)
	require.True(t, ok)
	assert.Equal(t, uint32(1<<32-1), total)
}

func TestConfirmable(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	ok, _ := confirmable(&model.Booking{Status: model.BookingPending, HoldExpiresAt: &future}, now)
	assert.True(t, ok)

	ok, msg := confirmable(&model.Booking{Status: model.BookingPending, HoldExpiresAt: &past}, now)
	assert.False(t, ok)
	assert.Equal(t, "hold expired", msg)

	ok, msg = confirmable(&model.Booking{Status: model.BookingConfirmed}, now)
	assert.False(t, ok)
	assert.Equal(t, "booking is not pending", msg)

	ok, msg = confirmable(&model.Booking{Status: model.BookingExpired, HoldExpiresAt: &past}, now)
	assert.False(t, ok)
	assert.Equal(t, "booking is not pending", msg)
}

func TestConfirmedEvent(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	b := &model.Booking{
		ID:               7,
		Reference:        "BK-1A2B3C4D",
		UserID:           3,
		ListingID:        5,
		Units:            2,
		Guests:           4,
		TotalAmountCents: 48000,
		CheckIn:          date(2026, 9, 4),
		CheckOut:         date(2026, 9, 6),
		User:             &model.User{Email: "guest@example.com", FullName: "Alex Guest"},
		Listing: &model.Listing{
			Name:     "Fjord Lodge",
			Location: &model.Location{Name: "Flam"},
		},
		Resource: &model.Resource{Name: "Cabin"},
	}

	e := confirmedEvent(b, now)
	assert.Equal(t, uint64(7), e.BookingID)
	assert.Equal(t, "BK-1A2B3C4D", e.Reference)
	assert.Equal(t, "guest@example.com", e.GuestEmail)
	assert.Equal(t, "Alex Guest", e.GuestName)
	assert.Equal(t, "Fjord Lodge", e.ListingName)
	assert.Equal(t, "Flam", e.LocationName)
	assert.Equal(t, "Cabin", e.ResourceName)
	assert.Equal(t, "2026-09-04", e.CheckIn)
	assert.Equal(t, "2026-09-06", e.CheckOut)
	assert.Equal(t, now.Format(time.RFC3339), e.ConfirmedAt)

	// Missing preloads degrade to empty fields, never panic. The staff
	// override publishes through the same builder, so this covers both
	// confirm paths.
	bare := confirmedEvent(&model.Booking{ID: 9}, now)
	assert.Empty(t, bare.GuestEmail)
	assert.Empty(t, bare.ListingName)
}
