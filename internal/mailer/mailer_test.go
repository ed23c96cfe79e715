package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averden/hospitality-booking/internal/config"
)

type recordingSender struct {
	sent []*Email
}

func (r *recordingSender) Send(_ context.Context, e *Email) error {
	r.sent = append(r.sent, e)
	return nil
}

func sample() BookingEmail {
	return BookingEmail{
		To:           "guest@example.com",
		GuestName:    "Maja",
		Reference:    "BK-7F3A2C",
		ListingName:  "Pine Ridge Lodge",
		LocationName: "Lakeview",
		ResourceName: "Double cabin",
		CheckIn:      "2026-09-04",
		CheckOut:     "2026-09-07",
		Units:        1,
		Guests:       2,
		TotalAmount:  "$450.00",
	}
}

func TestSendBookingConfirmed(t *testing.T) {
	rec := &recordingSender{}
	m := NewWithSender(config.MailerConfig{}, rec)

	require.NoError(t, m.SendBookingConfirmed(context.Background(), sample()))
	require.Len(t, rec.sent, 1)

	e := rec.sent[0]
	assert.Equal(t, "guest@example.com", e.To)
	assert.Equal(t, "Booking BK-7F3A2C confirmed", e.Subject)
	assert.Contains(t, e.HTML, "<strong>BK-7F3A2C</strong>")
	assert.Contains(t, e.HTML, "Pine Ridge Lodge")
	assert.Contains(t, e.Text, "Check-in: 2026-09-04")
	assert.NotContains(t, e.Text, "<strong>") // text part stays markdown
}

func TestSendBookingCancelled(t *testing.T) {
	rec := &recordingSender{}
	m := NewWithSender(config.MailerConfig{}, rec)

	require.NoError(t, m.SendBookingCancelled(context.Background(), sample()))
	require.Len(t, rec.sent, 1)
	assert.Equal(t, "Booking BK-7F3A2C cancelled", rec.sent[0].Subject)
	assert.Contains(t, rec.sent[0].HTML, "has been cancelled")
}

func TestRenderEscapesNothingItShould(t *testing.T) {
	html, text, err := render("plain {{.Reference}}", BookingEmail{Reference: "BK-1"})
	require.NoError(t, err)
	assert.Contains(t, html, "plain BK-1")
	assert.Equal(t, "plain BK-1", text)
}
