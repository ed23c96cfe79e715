package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
)

// AdminLocationHandler manages locations and the facility catalog.
// Both are admin-only; staff work within listings, not the geography.
type AdminLocationHandler struct {
	Locations  *repository.LocationRepo
	Facilities *repository.FacilityRepo
}

func NewAdminLocationHandler(l *repository.LocationRepo, f *repository.FacilityRepo) *AdminLocationHandler {
	return &AdminLocationHandler{Locations: l, Facilities: f}
}

type locationReq struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *locationReq) normalize() (int, string) {
	r.Name = strings.TrimSpace(r.Name)
	r.Region = strings.TrimSpace(r.Region)
	r.Timezone = strings.TrimSpace(r.Timezone)
	if r.Name == "" {
		return http.StatusBadRequest, "name required"
	}
	if r.Timezone == "" {
		r.Timezone = "UTC"
	}
	// Reports bucket by this zone; reject names the tz database does
	// not know rather than failing at report time.
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return http.StatusBadRequest, "unknown timezone"
	}
	return 0, ""
}

// CreateLocation adds a location.
func (h *AdminLocationHandler) CreateLocation(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if status, msg := req.normalize(); status != 0 {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := model.Location{
		Name:      req.Name,
		Region:    req.Region,
		Timezone:  req.Timezone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.Locations.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// UpdateLocation rewrites a location's fields.
func (h *AdminLocationHandler) UpdateLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if status, msg := req.normalize(); status != 0 {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	l.Name = req.Name
	l.Region = req.Region
	l.Timezone = req.Timezone
	l.Latitude = req.Latitude
	l.Longitude = req.Longitude
	if err := h.Locations.Update(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update location failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteLocation removes a location with no listings attached.
func (h *AdminLocationHandler) DeleteLocation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Locations.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLocationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
		case errors.Is(err, repository.ErrLocationInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "location still has listings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete location failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- facilities -----

type facilityReq struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CreateFacility adds an amenity tag to the shared catalog.
func (h *AdminLocationHandler) CreateFacility(c echo.Context) error {
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f := model.Facility{Name: req.Name, Icon: strings.TrimSpace(req.Icon)}
	if err := h.Facilities.Create(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "facility already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create facility failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// UpdateFacility renames an amenity tag.
func (h *AdminLocationHandler) UpdateFacility(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	f.Name = req.Name
	f.Icon = strings.TrimSpace(req.Icon)
	if err := h.Facilities.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "facility already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update facility failed"})
	}
	return c.JSON(http.StatusOK, f)
}

// DeleteFacility removes a facility, detaching it from any listings.
func (h *AdminLocationHandler) DeleteFacility(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Facilities.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete facility failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
