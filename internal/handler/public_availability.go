package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/availability"
	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
)

// AvailabilityHandler serves the public per-day availability calendar.
type AvailabilityHandler struct {
	Listings  *repository.ListingRepo
	Resources *repository.ResourceRepo
	Bookings  *repository.BookingRepo
}

func NewAvailabilityHandler(l *repository.ListingRepo, r *repository.ResourceRepo, b *repository.BookingRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Listings: l, Resources: r, Bookings: b}
}

type resourceAvailability struct {
	ResourceID uint64             `json:"resource_id"`
	Name       string             `json:"name"`
	Capacity   uint32             `json:"capacity"`
	Quantity   uint32             `json:"quantity"`
	Days       []availability.Day `json:"days"`
}

// maxAvailabilityDays caps the calendar window a single request may ask
// for, keeping the per-day loop and the response bounded.
const maxAvailabilityDays = 186

// ListingAvailability returns, for each active resource of a published
// listing, the free unit count for every day in [from, to).
func (h *AvailabilityHandler) ListingAvailability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	from, err := dateParam(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	to, err := dateParam(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}
	if !to.After(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be after from"})
	}
	if to.Sub(from) > maxAvailabilityDays*24*time.Hour {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "range too large"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if l.Status != model.ListingPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	resources, err := h.Resources.ListByListing(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]resourceAvailability, 0, len(resources))
	for _, res := range resources {
		if !res.Active {
			continue
		}
		spans, err := h.Bookings.Spans(ctx, res.ID, from, to)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		out = append(out, resourceAvailability{
			ResourceID: res.ID,
			Name:       res.Name,
			Capacity:   res.Capacity,
			Quantity:   res.Quantity,
			Days:       availability.PerDay(res.Quantity, spans, from, to),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listing_id": id,
		"from":       from.Format("2006-01-02"),
		"to":         to.Format("2006-01-02"),
		"resources":  out,
	})
}
