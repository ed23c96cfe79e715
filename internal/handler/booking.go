package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/averden/hospitality-booking/internal/availability"
	"github.com/averden/hospitality-booking/internal/config"
	"github.com/averden/hospitality-booking/internal/mailer"
	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/queue"
	"github.com/averden/hospitality-booking/internal/repository"
	queue_publisher "github.com/averden/hospitality-booking/internal/service"
)

// BookingHandler owns the guest-facing booking lifecycle: quote,
// create (PENDING hold), confirm, cancel, list and get.
type BookingHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Listings  *repository.ListingRepo
	Resources *repository.ResourceRepo
	Rules     *repository.RuleRepo
	Users     *repository.UserRepo
	Mail      *mailer.Mailer
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, l *repository.ListingRepo,
	r *repository.ResourceRepo, ru *repository.RuleRepo, u *repository.UserRepo, m *mailer.Mailer) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Bookings: b, Listings: l, Resources: r, Rules: ru, Users: u, Mail: m}
}

// ----- DTOs -----

type bookingReq struct {
	ListingID  uint64 `json:"listing_id"`
	ResourceID uint64 `json:"resource_id"`
	CheckIn    string `json:"check_in"`  // YYYY-MM-DD
	CheckOut   string `json:"check_out"` // YYYY-MM-DD
	Units      uint32 `json:"units"`
	Guests     uint32 `json:"guests"`
	Note       string `json:"note"`
}

type quoteResp struct {
	ListingID      uint64 `json:"listing_id"`
	ResourceID     uint64 `json:"resource_id"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Nights         int    `json:"nights"`
	Units          uint32 `json:"units"`
	Guests         uint32 `json:"guests"`
	UnitPriceCents uint32 `json:"unit_price_cents"`
	TotalCents     uint32 `json:"total_cents"`
	Available      bool   `json:"available"`
}

// bookingIntent is a validated booking request with everything loaded
// that the quote and create paths both need.
type bookingIntent struct {
	listing  *model.Listing
	resource *model.Resource
	checkIn  time.Time
	checkOut time.Time
	nights   int
	units    uint32
	guests   uint32
	note     string
	total    uint32
}

// stayNights counts billable nights in a half-open stay. Same-day
// bookings (dining, events) bill as one night.
func stayNights(in, out time.Time) int {
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// totalCents prices a stay in 64-bit and reports failure when the sum
// does not fit the stored 32-bit amount. Multiplying in uint32 can
// wrap for long stays at high prices and silently underbill.
func totalCents(unitPrice, units uint32, nights int) (uint32, bool) {
	t := uint64(unitPrice) * uint64(units) * uint64(nights)
	if t > math.MaxUint32 {
		return 0, false
	}
	return uint32(t), true
}

// validate binds and checks a booking request against the listing's
// rules. It returns an httpErr with the status and message to send on
// failure.
func (h *BookingHandler) validate(ctx context.Context, req bookingReq, now time.Time) (*bookingIntent, int, string) {
	if req.ListingID == 0 || req.ResourceID == 0 {
		return nil, http.StatusBadRequest, "listing_id and resource_id required"
	}
	in, err := dateParam(req.CheckIn)
	if err != nil {
		return nil, http.StatusBadRequest, "check_in must be YYYY-MM-DD"
	}
	out, err := dateParam(req.CheckOut)
	if err != nil {
		return nil, http.StatusBadRequest, "check_out must be YYYY-MM-DD"
	}
	if !out.After(in) {
		return nil, http.StatusBadRequest, "check_out must be after check_in"
	}
	if in.Before(availability.DateOnly(now)) {
		return nil, http.StatusBadRequest, "check_in is in the past"
	}
	units := req.Units
	if units == 0 {
		units = 1
	}
	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	l, err := h.Listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, http.StatusNotFound, "listing not found"
		}
		return nil, http.StatusInternalServerError, "query failed"
	}
	if l.Status != model.ListingPublished {
		return nil, http.StatusNotFound, "listing not found"
	}
	res, err := h.Resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, http.StatusNotFound, "resource not found"
		}
		return nil, http.StatusInternalServerError, "query failed"
	}
	if res.ListingID != l.ID || !res.Active {
		return nil, http.StatusNotFound, "resource not found"
	}
	if uint64(guests) > uint64(res.Capacity)*uint64(units) {
		return nil, http.StatusUnprocessableEntity, "party exceeds resource capacity"
	}

	nights := stayNights(in, out)
	rules, err := h.Rules.ListByListing(ctx, l.ID)
	if err != nil {
		return nil, http.StatusInternalServerError, "query failed"
	}
	if r, ok := rules[model.RuleMinStayNights]; ok && nights < r.Value {
		return nil, http.StatusUnprocessableEntity, fmt.Sprintf("minimum stay is %d nights", r.Value)
	}
	if r, ok := rules[model.RuleMaxStayNights]; ok && nights > r.Value {
		return nil, http.StatusUnprocessableEntity, fmt.Sprintf("maximum stay is %d nights", r.Value)
	}
	if r, ok := rules[model.RuleMinLeadHours]; ok {
		if in.Before(now.Add(time.Duration(r.Value) * time.Hour)) {
			return nil, http.StatusUnprocessableEntity, fmt.Sprintf("bookings need %d hours lead time", r.Value)
		}
	}
	if r, ok := rules[model.RuleMaxPartySize]; ok && int(guests) > r.Value {
		return nil, http.StatusUnprocessableEntity, fmt.Sprintf("maximum party size is %d", r.Value)
	}

	unitPrice := res.UnitPriceCents(l.BasePriceCents)
	total, ok := totalCents(unitPrice, units, nights)
	if !ok {
		return nil, http.StatusUnprocessableEntity, "booking total exceeds the billable maximum"
	}

	return &bookingIntent{
		listing:  l,
		resource: res,
		checkIn:  in,
		checkOut: out,
		nights:   nights,
		units:    units,
		guests:   guests,
		note:     strings.TrimSpace(req.Note),
		total:    total,
	}, 0, ""
}

// Quote prices a prospective booking on the listing in the path and
// reports whether it currently fits, without reserving anything.
func (h *BookingHandler) Quote(c echo.Context) error {
	listingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ListingID = listingID

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	intent, status, msg := h.validate(ctx, req, time.Now().UTC())
	if intent == nil {
		return c.JSON(status, echo.Map{"error": msg})
	}

	spans, err := h.Bookings.Spans(ctx, intent.resource.ID, intent.checkIn, intent.checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	fits := availability.Fits(intent.resource.Quantity, spans, intent.checkIn, intent.checkOut, intent.units)

	return c.JSON(http.StatusOK, quoteResp{
		ListingID:      intent.listing.ID,
		ResourceID:     intent.resource.ID,
		CheckIn:        intent.checkIn.Format("2006-01-02"),
		CheckOut:       intent.checkOut.Format("2006-01-02"),
		Nights:         intent.nights,
		Units:          intent.units,
		Guests:         intent.guests,
		UnitPriceCents: intent.resource.UnitPriceCents(intent.listing.BasePriceCents),
		TotalCents:     intent.total,
		Available:      fits,
	})
}

// Create places a PENDING booking that holds inventory until the guest
// confirms or the hold lapses. The availability check and the insert
// run in one transaction with the overlapping rows locked, so two
// requests racing for the last unit cannot both win.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	intent, status, msg := h.validate(ctx, req, now)
	if intent == nil {
		return c.JSON(status, echo.Map{"error": msg})
	}

	hold := now.Add(time.Duration(h.Cfg.HoldTTLMin) * time.Minute)
	b := model.Booking{
		Reference:        newReference(),
		UserID:           uid,
		ListingID:        intent.listing.ID,
		ResourceID:       intent.resource.ID,
		Status:           model.BookingPending,
		CheckIn:          intent.checkIn,
		CheckOut:         intent.checkOut,
		Units:            intent.units,
		Guests:           intent.guests,
		TotalAmountCents: intent.total,
		Note:             intent.note,
		HoldExpiresAt:    &hold,
	}

	err = h.Bookings.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		spans, err := h.Bookings.SpansTx(ctx, tx, intent.resource.ID, intent.checkIn, intent.checkOut)
		if err != nil {
			return err
		}
		if !availability.Fits(intent.resource.Quantity, spans, intent.checkIn, intent.checkOut, intent.units) {
			return repository.ErrNoAvailability
		}
		return h.Bookings.CreateTx(ctx, tx, &b)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoAvailability) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no availability for the requested dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	return c.JSON(http.StatusCreated, b)
}

// Confirm moves the caller's PENDING booking to CONFIRMED and publishes
// the event that triggers the confirmation email.
func (h *BookingHandler) Confirm(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetForUser(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	now := time.Now().UTC()
	if ok, msg := confirmable(b, now); !ok {
		if b.HoldLapsed(now) {
			// The sweep may not have run yet; treat a lapsed hold as gone.
			_ = h.Bookings.UpdateStatus(ctx, id, []string{model.BookingPending}, model.BookingExpired)
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": msg})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, []string{model.BookingPending}, model.BookingConfirmed); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
	}
	b.Status = model.BookingConfirmed

	// Fire and forget: the booking is confirmed either way, the email
	// just lags if the broker is down.
	if err := queue_publisher.PublishBookingConfirmed(ctx, confirmedEvent(b, now)); err != nil {
		log.Printf("publish booking.confirmed failed for %s: %v", b.Reference, err)
	}

	return c.JSON(http.StatusOK, b)
}

// confirmable reports whether a booking can move to CONFIRMED at now
// and, when it cannot, the message to send with the 409.
func confirmable(b *model.Booking, now time.Time) (bool, string) {
	if b.Status != model.BookingPending {
		return false, "booking is not pending"
	}
	if b.HoldLapsed(now) {
		return false, "hold expired"
	}
	return true, ""
}

// confirmedEvent assembles the broker payload from a booking loaded
// with its user, listing, location and resource.
func confirmedEvent(b *model.Booking, now time.Time) queue.BookingConfirmedEvent {
	event := queue.BookingConfirmedEvent{
		BookingID:        b.ID,
		Reference:        b.Reference,
		UserID:           b.UserID,
		ListingID:        b.ListingID,
		Units:            b.Units,
		Guests:           b.Guests,
		TotalAmountCents: b.TotalAmountCents,
		CheckIn:          b.CheckIn.Format("2006-01-02"),
		CheckOut:         b.CheckOut.Format("2006-01-02"),
		ConfirmedAt:      now.Format(time.RFC3339),
	}
	if b.User != nil {
		event.GuestName = b.User.FullName
		event.GuestEmail = b.User.Email
	}
	if b.Listing != nil {
		event.ListingName = b.Listing.Name
		if b.Listing.Location != nil {
			event.LocationName = b.Listing.Location.Name
		}
	}
	if b.Resource != nil {
		event.ResourceName = b.Resource.Name
	}
	return event
}

// Cancel cancels the caller's booking, honoring the listing's
// CANCEL_CUTOFF_HOURS rule, and emails the guest.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Bookings.GetForUser(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if !b.HoldsInventory() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
	}

	now := time.Now().UTC()
	if b.Status == model.BookingConfirmed {
		rules, err := h.Rules.ListByListing(ctx, b.ListingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if r, ok := rules[model.RuleCancelCutoffHours]; ok {
			cutoff := b.CheckIn.Add(-time.Duration(r.Value) * time.Hour)
			if now.After(cutoff) {
				return c.JSON(http.StatusUnprocessableEntity,
					echo.Map{"error": fmt.Sprintf("cancellation closes %d hours before check-in", r.Value)})
			}
		}
	}

	from := []string{model.BookingPending, model.BookingConfirmed}
	if err := h.Bookings.UpdateStatus(ctx, id, from, model.BookingCancelled); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	wasConfirmed := b.Status == model.BookingConfirmed
	b.Status = model.BookingCancelled

	// Only confirmed stays warrant a cancellation notice; abandoning a
	// pending hold is not news to anyone.
	if wasConfirmed && b.User != nil {
		mail := mailer.BookingEmail{
			To:          b.User.Email,
			GuestName:   b.User.FullName,
			Reference:   b.Reference,
			CheckIn:     b.CheckIn.Format("2006-01-02"),
			CheckOut:    b.CheckOut.Format("2006-01-02"),
			Units:       b.Units,
			Guests:      b.Guests,
			TotalAmount: formatMoney(b.TotalAmountCents),
		}
		if b.Listing != nil {
			mail.ListingName = b.Listing.Name
			if b.Listing.Location != nil {
				mail.LocationName = b.Listing.Location.Name
			}
		}
		if b.Resource != nil {
			mail.ResourceName = b.Resource.Name
		}
		if err := h.Mail.SendBookingCancelled(ctx, mail); err != nil {
			log.Printf("cancellation email failed for %s: %v", b.Reference, err)
		}
	}

	return c.JSON(http.StatusOK, b)
}

// List returns the caller's bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, pageSize := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bs, total, err := h.Bookings.ListByUser(ctx, uid, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bs,
		"meta":     listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// Get returns one of the caller's bookings with listing and resource
// loaded.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetForUser(ctx, id, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

// newReference mints the short code guests see on emails and invoices.
func newReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func formatMoney(cents uint32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
