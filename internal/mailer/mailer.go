// Package mailer sends transactional booking email through Resend.
// Bodies are small markdown templates rendered to HTML; the markdown
// source doubles as the plain-text part.
package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/averden/hospitality-booking/internal/config"
)

// Email is a rendered message ready for a Sender.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers rendered email. The production implementation is
// Resend; tests plug in a recorder.
type Sender interface {
	Send(ctx context.Context, e *Email) error
}

// Mailer renders templates and hands them to its Sender.
type Mailer struct {
	sender Sender
	cfg    config.MailerConfig
}

// New builds a Mailer. Without an API key the mailer logs and drops
// messages so development environments work unconfigured.
func New(cfg config.MailerConfig) *Mailer {
	var s Sender
	if cfg.APIKey == "" {
		log.Println("mailer: no RESEND_API_KEY, outgoing email disabled")
		s = dropSender{}
	} else {
		s = &resendSender{client: resend.NewClient(cfg.APIKey), cfg: cfg}
	}
	return &Mailer{sender: s, cfg: cfg}
}

// NewWithSender wires an explicit sender; used by tests.
func NewWithSender(cfg config.MailerConfig, s Sender) *Mailer {
	return &Mailer{sender: s, cfg: cfg}
}

// BookingEmail carries the fields the booking templates interpolate.
type BookingEmail struct {
	To           string
	GuestName    string
	Reference    string
	ListingName  string
	LocationName string
	ResourceName string
	CheckIn      string
	CheckOut     string
	Units        uint32
	Guests       uint32
	TotalAmount  string
}

// SendBookingConfirmed emails the guest their confirmation.
func (m *Mailer) SendBookingConfirmed(ctx context.Context, data BookingEmail) error {
	return m.send(ctx, data.To,
		fmt.Sprintf("Booking %s confirmed", data.Reference),
		confirmedTemplate, data)
}

// SendBookingCancelled emails the guest a cancellation notice.
func (m *Mailer) SendBookingCancelled(ctx context.Context, data BookingEmail) error {
	return m.send(ctx, data.To,
		fmt.Sprintf("Booking %s cancelled", data.Reference),
		cancelledTemplate, data)
}

func (m *Mailer) send(ctx context.Context, to, subject, tmpl string, data any) error {
	html, text, err := render(tmpl, data)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	return m.sender.Send(ctx, &Email{To: to, Subject: subject, HTML: html, Text: text})
}

// resendSender delivers through the Resend API.
type resendSender struct {
	client *resend.Client
	cfg    config.MailerConfig
}

func (s *resendSender) Send(ctx context.Context, e *Email) error {
	from := s.cfg.SenderEmail
	if s.cfg.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.SenderEmail)
	}
	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{e.To},
		Subject: e.Subject,
		Html:    e.HTML,
		Text:    e.Text,
	}
	if s.cfg.ReplyTo != "" {
		req.ReplyTo = s.cfg.ReplyTo
	}
	_, err := s.client.Emails.SendWithContext(ctx, req)
	return err
}

// dropSender logs instead of sending.
type dropSender struct{}

func (dropSender) Send(_ context.Context, e *Email) error {
	log.Printf("mailer: dropping email to=%s subject=%q (sender disabled)", e.To, e.Subject)
	return nil
}
