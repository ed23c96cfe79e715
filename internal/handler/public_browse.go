package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
)

// BrowseHandler serves the unauthenticated catalog endpoints.
type BrowseHandler struct {
	Locations  *repository.LocationRepo
	Facilities *repository.FacilityRepo
	Listings   *repository.ListingRepo
}

func NewBrowseHandler(loc *repository.LocationRepo, fac *repository.FacilityRepo, lst *repository.ListingRepo) *BrowseHandler {
	return &BrowseHandler{Locations: loc, Facilities: fac, Listings: lst}
}

// ListLocations returns every location, alphabetically.
func (h *BrowseHandler) ListLocations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	locs, err := h.Locations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"locations": locs})
}

// ListFacilities returns the full facility catalog for filter UIs.
func (h *BrowseHandler) ListFacilities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fs, err := h.Facilities.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"facilities": fs})
}

// ListingsByLocation returns the published listings at one location.
func (h *BrowseHandler) ListingsByLocation(c echo.Context) error {
	locID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loc, err := h.Locations.GetByID(ctx, locID)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ls, err := h.Listings.ListByLocation(ctx, locID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"location": loc, "listings": ls})
}

// ListingBySlug returns the public detail page payload for one
// published listing: location, facilities, active resources, rules and
// media in a single response.
func (h *BrowseHandler) ListingBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetDetailBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	// Drafts and archived listings exist only for the management API.
	if l.Status != model.ListingPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	return c.JSON(http.StatusOK, l)
}
