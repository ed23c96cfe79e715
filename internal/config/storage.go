package config

// StorageConfig holds credentials for the S3-compatible object store
// where listing media is uploaded. Endpoint is optional and only set
// for non-AWS providers (MinIO, R2, Spaces); PublicBaseURL, when set,
// overrides the derived public object URL (e.g. a CDN host).
type StorageConfig struct {
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	PublicBaseURL string
	PathStyle     bool
	MaxUploadMB   int
}

// LoadStorageConfig reads storage settings from the environment. The
// bucket and key pair are required; everything else has a default.
func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Bucket:        must("STORAGE_BUCKET"),
		Region:        envStr("STORAGE_REGION", "us-east-1"),
		AccessKey:     must("STORAGE_ACCESS_KEY"),
		SecretKey:     must("STORAGE_SECRET_KEY"),
		Endpoint:      envStr("STORAGE_ENDPOINT", ""),
		PublicBaseURL: envStr("STORAGE_PUBLIC_BASE_URL", ""),
		PathStyle:     envBool("STORAGE_PATH_STYLE", false),
		MaxUploadMB:   envInt("STORAGE_MAX_UPLOAD_MB", 10),
	}
}
