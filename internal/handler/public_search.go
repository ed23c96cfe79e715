package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/repository"
)

// SearchHandler serves the public listing search.
type SearchHandler struct {
	Listings *repository.ListingRepo
}

func NewSearchHandler(l *repository.ListingRepo) *SearchHandler {
	return &SearchHandler{Listings: l}
}

// SearchListings filters published listings by term, location,
// category, facilities, price range, party size and date availability.
// All filters are query parameters and combine with AND.
func (h *SearchHandler) SearchListings(c echo.Context) error {
	q := repository.ListingSearchQuery{
		Term:     strings.TrimSpace(c.QueryParam("q")),
		Category: strings.TrimSpace(c.QueryParam("category")),
	}
	q.Page, q.PageSize = pageParams(c)

	if v := c.QueryParam("location_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
		}
		q.LocationID = id
	}
	if v := c.QueryParam("guests"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
		}
		q.Guests = uint32(n)
	}
	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		q.MinPrice = uint32(n)
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		q.MaxPrice = uint32(n)
	}
	// facilities=1,4,9
	if v := c.QueryParam("facilities"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil || id == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facilities"})
			}
			q.FacilityIDs = append(q.FacilityIDs, id)
		}
	}

	checkIn := c.QueryParam("check_in")
	checkOut := c.QueryParam("check_out")
	if (checkIn == "") != (checkOut == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in and check_out must be given together"})
	}
	if checkIn != "" {
		in, err := dateParam(checkIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
		}
		out, err := dateParam(checkOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
		}
		if !out.After(in) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
		}
		q.CheckIn, q.CheckOut = in, out
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	listings, total, err := h.Listings.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings": listings,
		"meta":     listMeta{Page: q.Page, PageSize: q.PageSize, Total: total},
	})
}
