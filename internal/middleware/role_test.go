package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRole(t *testing.T, role any, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/listings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := doRole(t, "ADMIN", "ADMIN", "STAFF")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOther(t *testing.T) {
	rec := doRole(t, "USER", "ADMIN", "STAFF")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissing(t *testing.T) {
	rec := doRole(t, nil, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsNonString(t *testing.T) {
	rec := doRole(t, 42, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
