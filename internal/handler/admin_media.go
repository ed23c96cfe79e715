package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/config"
	"github.com/averden/hospitality-booking/internal/model"
	"github.com/averden/hospitality-booking/internal/repository"
	"github.com/averden/hospitality-booking/internal/storage"
)

// AdminMediaHandler uploads listing media to object storage and tracks
// the resulting assets.
type AdminMediaHandler struct {
	Cfg      config.StorageConfig
	Store    *storage.Uploader
	Media    *repository.MediaRepo
	Listings *repository.ListingRepo
	Users    *repository.UserRepo
}

func NewAdminMediaHandler(cfg config.StorageConfig, s *storage.Uploader, m *repository.MediaRepo,
	l *repository.ListingRepo, u *repository.UserRepo) *AdminMediaHandler {
	return &AdminMediaHandler{Cfg: cfg, Store: s, Media: m, Listings: l, Users: u}
}

func (h *AdminMediaHandler) managed(ctx context.Context, c echo.Context, listingID uint64) (*model.Listing, bool) {
	uid, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	l, err := h.Listings.GetByID(ctx, listingID)
	if err != nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		return nil, false
	}
	if !canManage(staffScope(c, u), l) {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		return nil, false
	}
	return l, true
}

// Upload accepts a multipart "file" part, streams it to the bucket and
// records the asset against the listing.
func (h *AdminMediaHandler) Upload(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file part required"})
	}
	maxBytes := int64(h.Cfg.MaxUploadMB) * 1024 * 1024
	if fh.Size > maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge,
			echo.Map{"error": fmt.Sprintf("file exceeds %d MB", h.Cfg.MaxUploadMB)})
	}
	contentType := fh.Header.Get("Content-Type")
	if !storage.AllowedUploadType(contentType) {
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "unsupported file type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	if _, ok := h.managed(ctx, c, id); !ok {
		return nil
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()

	prefix := fmt.Sprintf("listings/%d", id)
	key, url, err := h.Store.Upload(ctx, src, fh.Size, contentType, prefix)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "storage upload failed"})
	}

	asset := model.MediaAsset{
		ListingID:   id,
		Key:         key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   fh.Size,
	}
	if err := h.Media.Create(ctx, &asset); err != nil {
		// Do not leave an untracked object behind.
		_ = h.Store.Delete(ctx, key)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save media failed"})
	}
	return c.JSON(http.StatusCreated, asset)
}

// List returns the assets attached to a listing.
func (h *AdminMediaHandler) List(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.managed(ctx, c, id); !ok {
		return nil
	}
	assets, err := h.Media.ListByListing(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"media": assets})
}

// Delete removes an asset from the bucket and the database.
func (h *AdminMediaHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	mediaID, err := pathID(c, "mediaID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if _, ok := h.managed(ctx, c, id); !ok {
		return nil
	}
	asset, err := h.Media.GetByID(ctx, mediaID)
	if err != nil || asset.ListingID != id {
		if err != nil && !errors.Is(err, repository.ErrMediaNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "media not found"})
	}
	if err := h.Store.Delete(ctx, asset.Key); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "storage delete failed"})
	}
	if err := h.Media.Delete(ctx, mediaID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete media failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
