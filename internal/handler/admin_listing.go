package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
	"github.com/averden/hospitality-booking/internal/sanitize"
)

// AdminListingHandler covers the management side of the catalog:
// listings plus their resources, rules and facility sets. Staff only
// reach listings attached to their own group; admins see everything.
type AdminListingHandler struct {
	Listings   *repository.ListingRepo
	Resources  *repository.ResourceRepo
	Rules      *repository.RuleRepo
	Locations  *repository.LocationRepo
	Facilities *repository.FacilityRepo
	Users      *repository.UserRepo
}

func NewAdminListingHandler(l *repository.ListingRepo, r *repository.ResourceRepo, ru *repository.RuleRepo,
	loc *repository.LocationRepo, f *repository.FacilityRepo, u *repository.UserRepo) *AdminListingHandler {
	return &AdminListingHandler{Listings: l, Resources: r, Rules: ru, Locations: loc, Facilities: f, Users: u}
}

// scope returns the group filter for the caller: nil for admins and
// unscoped staff, the staff member's group otherwise.
func (h *AdminListingHandler) scope(ctx context.Context, c echo.Context) (*uint64, error) {
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

// canManage reports whether the caller's scope admits a listing.
func canManage(scope *uint64, l *model.Listing) bool {
	if scope == nil {
		return true
	}
	return l.GroupID != nil && *l.GroupID == *scope
}

// ----- DTOs -----

type listingReq struct {
	LocationID     uint64   `json:"location_id"`
	GroupID        *uint64  `json:"group_id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	BasePriceCents uint32   `json:"base_price_cents"`
	FacilityIDs    []uint64 `json:"facility_ids"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func (r *listingReq) normalize() (status int, msg string) {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	if r.LocationID == 0 || r.Name == "" || r.Slug == "" {
		return http.StatusBadRequest, "location_id, name and slug required"
	}
	if !slugPattern.MatchString(r.Slug) {
		return http.StatusBadRequest, "slug must be lowercase letters, digits and dashes"
	}
	if !model.ValidCategory(r.Category) {
		return http.StatusBadRequest, "category must be LODGE, DINING or EVENT"
	}
	r.Description = sanitize.Description(r.Description)
	return 0, ""
}

// CreateListing makes a new DRAFT listing.
func (h *AdminListingHandler) CreateListing(c echo.Context) error {
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if status, msg := req.normalize(); status != 0 {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	// Staff-created listings always land in the staff member's group.
	if scope != nil {
		req.GroupID = scope
	}

	if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "location does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	l := model.Listing{
		LocationID:     req.LocationID,
		GroupID:        req.GroupID,
		Name:           req.Name,
		Slug:           req.Slug,
		Category:       req.Category,
		Description:    req.Description,
		Status:         model.ListingDraft,
		BasePriceCents: req.BasePriceCents,
	}
	if err := h.Listings.Create(ctx, &l); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	if len(req.FacilityIDs) > 0 {
		if err := h.Listings.ReplaceFacilities(ctx, l.ID, req.FacilityIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "set facilities failed"})
		}
	}
	return c.JSON(http.StatusCreated, l)
}

// ListListings pages through listings in every state, scoped for staff.
func (h *AdminListingHandler) ListListings(c echo.Context) error {
	page, pageSize := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	scope, err := h.scope(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ls, total, err := h.Listings.ListAdmin(ctx, scope, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings": ls,
		"meta":     listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// GetListing returns the full management view of one listing.
func (h *AdminListingHandler) GetListing(c echo.Context) error {
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
	l, err := h.Listings.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !canManage(scope, l) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	return c.JSON(http.StatusOK, l)
}

// loadManaged fetches a listing and enforces the caller's scope,
// writing the error response itself when something is off.
func (h *AdminListingHandler) loadManaged(ctx context.Context, c echo.Context, id uint64) *model.Listing {
	scope, err := h.scope(ctx, c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil
	}
	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return nil
	}
	if !canManage(scope, l) {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		return nil
	}
	return l
}

// UpdateListing rewrites the mutable fields and the facility set.
func (h *AdminListingHandler) UpdateListing(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if status, msg := req.normalize(); status != 0 {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	l := h.loadManaged(ctx, c, id)
	if l == nil {
		return nil
	}
	if getRole(c) != model.RoleAdmin {
		// Staff cannot move a listing out of their group.
		req.GroupID = l.GroupID
	}

	l.LocationID = req.LocationID
	l.GroupID = req.GroupID
	l.Name = req.Name
	l.Slug = req.Slug
	l.Category = req.Category
	l.Description = req.Description
	l.BasePriceCents = req.BasePriceCents
	if err := h.Listings.Update(ctx, l); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update listing failed"})
	}
	if req.FacilityIDs != nil {
		if err := h.Listings.ReplaceFacilities(ctx, id, req.FacilityIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "set facilities failed"})
		}
	}
	return c.JSON(http.StatusOK, l)
}

// SetListingStatus moves a listing between DRAFT, PUBLISHED and
// ARCHIVED.
func (h *AdminListingHandler) SetListingStatus(c echo.Context) error {
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
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.ListingDraft && status != model.ListingPublished && status != model.ListingArchived {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be DRAFT, PUBLISHED or ARCHIVED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := h.loadManaged(ctx, c, id)
	if l == nil {
		return nil
	}
	if status == model.ListingPublished {
		// A listing without inventory cannot take bookings.
		rs, err := h.Resources.ListByListing(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		active := 0
		for _, r := range rs {
			if r.Active {
				active++
			}
		}
		if active == 0 {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot publish a listing without active resources"})
		}
	}
	if err := h.Listings.SetStatus(ctx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	l.Status = status
	return c.JSON(http.StatusOK, l)
}

// ----- resources -----

type resourceReq struct {
	Name       string `json:"name"`
	Capacity   uint32 `json:"capacity"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint32 `json:"price_cents"`
	Active     *bool  `json:"active"`
}

// CreateResource adds inventory under a listing.
func (h *AdminListingHandler) CreateResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req resourceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity == 0 || req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity and quantity required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.loadManaged(ctx, c, id) == nil {
		return nil
	}
	res := model.Resource{
		ListingID:  id,
		Name:       req.Name,
		Capacity:   req.Capacity,
		Quantity:   req.Quantity,
		PriceCents: req.PriceCents,
		Active:     true,
	}
	if err := h.Resources.Create(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resource failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// UpdateResource changes a resource's fields, including the active
// flag. Shrinking quantity below existing bookings is allowed; those
// days simply report negative free counts until the bookings pass.
func (h *AdminListingHandler) UpdateResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	resID, err := pathID(c, "resourceID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req resourceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity == 0 || req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, capacity and quantity required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.loadManaged(ctx, c, id) == nil {
		return nil
	}
	res, err := h.Resources.GetByID(ctx, resID)
	if err != nil || res.ListingID != id {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
	}
	res.Name = req.Name
	res.Capacity = req.Capacity
	res.Quantity = req.Quantity
	res.PriceCents = req.PriceCents
	if req.Active != nil {
		res.Active = *req.Active
	}
	if err := h.Resources.Update(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update resource failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteResource removes a resource, or deactivates it when bookings
// reference it.
func (h *AdminListingHandler) DeleteResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	resID, err := pathID(c, "resourceID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.loadManaged(ctx, c, id) == nil {
		return nil
	}
	res, err := h.Resources.GetByID(ctx, resID)
	if err != nil || res.ListingID != id {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
	}
	if err := h.Resources.Delete(ctx, resID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete resource failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- rules -----

type ruleReq struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
	Note  string `json:"note"`
}

// UpsertRule sets one booking rule on a listing, replacing any
// existing rule of the same kind.
func (h *AdminListingHandler) UpsertRule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Kind = strings.ToUpper(strings.TrimSpace(req.Kind))
	if !model.ValidRuleKind(req.Kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown rule kind"})
	}
	if req.Value < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.loadManaged(ctx, c, id) == nil {
		return nil
	}
	rule := model.Rule{
		ListingID: id,
		Kind:      req.Kind,
		Value:     req.Value,
		Note:      sanitize.Plain(req.Note),
	}
	if err := h.Rules.Upsert(ctx, &rule); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rule failed"})
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule removes one rule from a listing.
func (h *AdminListingHandler) DeleteRule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ruleID, err := pathID(c, "ruleID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.loadManaged(ctx, c, id) == nil {
		return nil
	}
	rules, err := h.Rules.ListByListing(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	owned := false
	for _, r := range rules {
		if r.ID == ruleID {
			owned = true
			break
		}
	}
	if !owned {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
	}
	if err := h.Rules.Delete(ctx, ruleID); err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rule failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
