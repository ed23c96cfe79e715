package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averden/hospitality-booking/internal/model"
)

func TestListingReqNormalize(t *testing.T) {
	req := listingReq{
		LocationID: 1,
		Name:       "  Fjord Lodge  ",
		Slug:       " Fjord-Lodge ",
		Category:   "lodge",
	}
	status, _ := req.normalize()
	assert.Equal(t, 0, status)
	assert.Equal(t, "Fjord Lodge", req.Name)
	assert.Equal(t, "fjord-lodge", req.Slug)
	assert.Equal(t, model.CategoryLodge, req.Category)
}

func TestListingReqNormalizeRejects(t *testing.T) {
	cases := []struct {
		name string
		req  listingReq
	}{
		{"missing location", listingReq{Name: "x", Slug: "x", Category: "LODGE"}},
		{"bad slug", listingReq{LocationID: 1, Name: "x", Slug: "Bad Slug!", Category: "LODGE"}},
		{"bad category", listingReq{LocationID: 1, Name: "x", Slug: "x", Category: "HOTEL"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := tc.req.normalize()
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestListingReqNormalizeSanitizesDescription(t *testing.T) {
	req := listingReq{
		LocationID:  1,
		Name:        "x",
		Slug:        "x",
		Category:    "EVENT",
		Description: `<p>fine</p><script>alert(1)</script>`,
	}
	status, _ := req.normalize()
	assert.Equal(t, 0, status)
	assert.Contains(t, req.Description, "<p>fine</p>")
	assert.NotContains(t, req.Description, "script")
}

func TestCanManage(t *testing.T) {
	g1, g2 := uint64(1), uint64(2)
	l := &model.Listing{GroupID: &g1}

	assert.True(t, canManage(nil, l), "admins see everything")
	assert.True(t, canManage(&g1, l))
	assert.False(t, canManage(&g2, l))
	assert.False(t, canManage(&g1, &model.Listing{}), "ungrouped listings are admin-only for staff")
}
