package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	c := testContext(t, "/")

	c.Set("user_id", float64(42))
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.Set("user_id", uint64(7))
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	c.Set("user_id", "19")
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(19), id)

	c.Set("user_id", "not-a-number")
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestPageParams(t *testing.T) {
	c := testContext(t, "/?page=3&page_size=50")
	page, size := pageParams(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	// Out-of-range values fall back to defaults.
	c = testContext(t, "/?page=0&page_size=9999")
	page, size = pageParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	c = testContext(t, "/")
	page, size = pageParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)
}

func TestPathID(t *testing.T) {
	c := testContext(t, "/")
	c.SetParamNames("id")
	c.SetParamValues("15")
	id, err := pathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id)

	c.SetParamValues("0")
	_, err = pathID(c, "id")
	assert.Error(t, err)

	c.SetParamValues("abc")
	_, err = pathID(c, "id")
	assert.Error(t, err)
}

func TestDateParam(t *testing.T) {
	d, err := dateParam(" 2026-08-30 ")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 30, d.Day())

	_, err = dateParam("30/08/2026")
	assert.Error(t, err)
}
