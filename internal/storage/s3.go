// Package storage uploads listing media to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/averden/hospitality-booking/internal/config"
)

// Uploader wraps an S3 client configured for either AWS or an
// S3-compatible endpoint (MinIO, R2, Spaces).
type Uploader struct {
	client *s3.Client
	cfg    config.StorageConfig
}

// New builds an Uploader from storage config.
func New(cfg config.StorageConfig) *Uploader {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}
	return &Uploader{client: s3.New(s3.Options{}, opts...), cfg: cfg}
}

// Upload stores the reader under a generated key and returns the key
// and public URL. Objects are public-read; listing media is meant to
// be served directly.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, size int64, contentType, prefix string) (key, url string, err error) {
	key = buildKey(prefix, contentType)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, u.PublicURL(key), nil
}

// Delete removes an object. Missing keys are not an error; S3 deletes
// are idempotent.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL derives the address an uploaded object is served from.
func (u *Uploader) PublicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(u.cfg.Endpoint, "/"), u.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}

// buildKey generates "<prefix>/<uuid>.<ext>" with the extension taken
// from the content type.
func buildKey(prefix, contentType string) string {
	name := uuid.NewString()
	if ext := extFor(contentType); ext != "" {
		name += "." + ext
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "application/pdf":
		return "pdf"
	}
	return ""
}

// AllowedUploadType reports whether the service accepts uploads of
// this content type. Listing media is images plus PDF menus.
func AllowedUploadType(contentType string) bool {
	return extFor(contentType) != ""
}
