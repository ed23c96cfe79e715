package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
	queue_publisher "github.com/averden/hospitality-booking/internal/service"
)

// AdminBookingHandler gives staff and admins visibility into bookings
// across users. Staff only see bookings on their group's listings.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
	Listings *repository.ListingRepo
	Users    *repository.UserRepo
}

func NewAdminBookingHandler(b *repository.BookingRepo, l *repository.ListingRepo, u *repository.UserRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Listings: l, Users: u}
}

func (h *AdminBookingHandler) scope(ctx context.Context, c echo.Context) (*uint64, error) {
	uid, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return staffScope(c, u), nil
}

// ListBookings filters bookings by status, listing, location and
// check-in date range.
func (h *AdminBookingHandler) ListBookings(c echo.Context) error {
	q := repository.BookingAdminQuery{
		Status: strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))),
	}
	q.Page, q.PageSize = pageParams(c)
	if q.Status != "" {
		switch q.Status {
		case model.BookingPending, model.BookingConfirmed, model.BookingCancelled, model.BookingExpired:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}
	if v := c.QueryParam("listing_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing_id"})
		}
		q.ListingID = id
	}
	if v := c.QueryParam("location_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
		}
		q.LocationID = id
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := dateParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
		q.From = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := dateParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
		}
		q.To = t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	q.GroupID = scope

	bs, total, err := h.Bookings.ListAdmin(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bs,
		"meta":     listMeta{Page: q.Page, PageSize: q.PageSize, Total: total},
	})
}

// GetBooking returns any booking by ID, subject to staff scoping.
func (h *AdminBookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if scope != nil {
		if b.Listing == nil || b.Listing.GroupID == nil || *b.Listing.GroupID != *scope {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
	}
	return c.JSON(http.StatusOK, b)
}

// SetBookingStatus is the staff override: it can confirm a pending
// booking on the guest's behalf (phone and front-desk flows) or move
// one to CANCELLED, both without the guest-facing cutoff rule.
func (h *AdminBookingHandler) SetBookingStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	var from []string
	switch target {
	case model.BookingConfirmed:
		from = []string{model.BookingPending}
	case model.BookingCancelled:
		from = []string{model.BookingPending, model.BookingConfirmed}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CONFIRMED or CANCELLED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if scope != nil {
		if b.Listing == nil || b.Listing.GroupID == nil || *b.Listing.GroupID != *scope {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
	}
	if err := h.Bookings.UpdateStatus(ctx, id, from, target); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not in an eligible state"})
	}
	b.Status = target

	// Front-desk confirms trigger the same confirmation email as the
	// guest-facing flow.
	if target == model.BookingConfirmed {
		if err := queue_publisher.PublishBookingConfirmed(ctx, confirmedEvent(b, time.Now().UTC())); err != nil {
			log.Printf("publish booking.confirmed failed for %s: %v", b.Reference, err)
		}
	}
	return c.JSON(http.StatusOK, b)
}

// CancelBooking is the staff override for walk-ins, phone requests and
// no-shows. It skips the guest-facing cutoff rule.
func (h *AdminBookingHandler) CancelBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if scope != nil {
		if b.Listing == nil || b.Listing.GroupID == nil || *b.Listing.GroupID != *scope {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
	}
	if !b.HoldsInventory() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
	}

	from := []string{model.BookingPending, model.BookingConfirmed}
	if err := h.Bookings.UpdateStatus(ctx, id, from, model.BookingCancelled); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled"})
	}
	b.Status = model.BookingCancelled
	return c.JSON(http.StatusOK, b)
}
