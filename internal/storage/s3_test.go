package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averden/hospitality-booking/internal/config"
)

func TestBuildKey(t *testing.T) {
	k := buildKey("listings/42", "image/png")
	assert.True(t, strings.HasPrefix(k, "listings/42/"))
	assert.True(t, strings.HasSuffix(k, ".png"))

	assert.NotEqual(t, buildKey("a", "image/png"), buildKey("a", "image/png"))

	// No prefix and unknown type: bare uuid.
	k = buildKey("", "application/octet-stream")
	assert.NotContains(t, k, "/")
	assert.NotContains(t, k, ".")
}

func TestAllowedUploadType(t *testing.T) {
	assert.True(t, AllowedUploadType("image/jpeg"))
	assert.True(t, AllowedUploadType("application/pdf"))
	assert.False(t, AllowedUploadType("text/html"))
	assert.False(t, AllowedUploadType("application/x-msdownload"))
}

func TestPublicURL(t *testing.T) {
	u := &Uploader{cfg: config.StorageConfig{Bucket: "media", Region: "eu-west-1"}}
	assert.Equal(t,
		"https://media.s3.eu-west-1.amazonaws.com/listings/1/a.png",
		u.PublicURL("listings/1/a.png"))

	u.cfg.Endpoint = "https://minio.local:9000"
	assert.Equal(t,
		"https://minio.local:9000/media/listings/1/a.png",
		u.PublicURL("listings/1/a.png"))

	u.cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t,
		"https://cdn.example.com/listings/1/a.png",
		u.PublicURL("listings/1/a.png"))
}
