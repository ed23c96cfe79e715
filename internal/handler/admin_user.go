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

// AdminUserHandler manages accounts and staff groups. All routes are
// admin-only.
type AdminUserHandler struct {
	Users  *repository.UserRepo
	Groups *repository.GroupRepo
	Tokens *repository.TokenRepo
}

func NewAdminUserHandler(u *repository.UserRepo, g *repository.GroupRepo, t *repository.TokenRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u, Groups: g, Tokens: t}
}

// ListUsers pages through accounts, optionally filtered by role.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	if role != "" && !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	page, pageSize := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, role, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
		"meta":  listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

type setRoleReq struct {
	Role    string  `json:"role"`
	GroupID *uint64 `json:"group_id"`
}

// SetUserRole changes an account's role and group membership. Only
// STAFF accounts carry a group.
func (h *AdminUserHandler) SetUserRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be ADMIN, STAFF or USER"})
	}
	if req.Role != model.RoleStaff {
		req.GroupID = nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// An admin cannot demote themselves; someone must hold the keys.
	if uid, err := getUserID(c); err == nil && uid == id && req.Role != model.RoleAdmin {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot change your own role"})
	}

	if req.GroupID != nil {
		if _, err := h.Groups.GetByID(ctx, *req.GroupID); err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "group does not exist"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}
	if err := h.Users.UpdateRole(ctx, id, req.Role, req.GroupID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

type setActiveReq struct {
	Active *bool `json:"active"`
}

// SetUserActive enables or disables an account. Disabling revokes all
// refresh tokens, so the lockout takes effect once the current access
// token expires.
func (h *AdminUserHandler) SetUserActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if uid, err := getUserID(c); err == nil && uid == id && !*req.Active {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "cannot deactivate your own account"})
	}
	if err := h.Users.SetActive(ctx, id, *req.Active); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !*req.Active {
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- groups -----

type groupReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateGroup adds a staff group.
func (h *AdminUserHandler) CreateGroup(c echo.Context) error {
	var req groupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g := model.Group{Name: req.Name, Description: strings.TrimSpace(req.Description)}
	if err := h.Groups.Create(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "group already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create group failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGroups returns all staff groups.
func (h *AdminUserHandler) ListGroups(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	gs, err := h.Groups.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": gs})
}

// GetGroup returns a group with its members.
func (h *AdminUserHandler) GetGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	members, err := h.Groups.Members(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"group": g, "members": members})
}

// UpdateGroup renames a group.
func (h *AdminUserHandler) UpdateGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req groupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	g.Name = req.Name
	g.Description = strings.TrimSpace(req.Description)
	if err := h.Groups.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "group already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update group failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// DeleteGroup removes a group, detaching its members and listings.
func (h *AdminUserHandler) DeleteGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete group failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
