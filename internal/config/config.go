package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Persistent store
	RedisURL       string
	StoreNamespace string
	StoreQuota     int

	// Remote catalog snapshot
	CatalogAPIURL      string
	CatalogSnapshotURL string
	FetchMaxAttempts   int
	FetchRetryDelay    time.Duration

	// Admin
	AdminUsername string
	AdminPassword string

	// Media proxy
	DriveAPIKey string

	// Email dispatch
	EmailJSBaseURL           string
	EmailJSServiceID         string
	EmailJSOrderTemplateID   string
	EmailJSContactTemplateID string
	EmailJSPublicKey         string
	OrderRecipient           string
}

func Load() *Config {
	maxAttempts, _ := strconv.Atoi(getEnv("CATALOG_FETCH_MAX_ATTEMPTS", "3"))
	retryDelayMs, _ := strconv.Atoi(getEnv("CATALOG_FETCH_RETRY_DELAY_MS", "2000"))
	storeQuota, _ := strconv.Atoi(getEnv("STORE_QUOTA_BYTES", "5242880"))

	return &Config{
		// Server
		Port:        getEnv("PORT", "8088"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Persistent store
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StoreNamespace: getEnv("STORE_NAMESPACE", "evergrain"),
		StoreQuota:     storeQuota,

		// Remote catalog snapshot - API base wins over the static path
		CatalogAPIURL:      getEnv("CATALOG_API_URL", ""),
		CatalogSnapshotURL: getEnv("CATALOG_SNAPSHOT_URL", "http://localhost:3000/initial-products.json"),
		FetchMaxAttempts:   maxAttempts,
		FetchRetryDelay:    time.Duration(retryDelayMs) * time.Millisecond,

		// Admin
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		// Media proxy
		DriveAPIKey: getEnv("GOOGLE_DRIVE_API_KEY", ""),

		// Email dispatch
		EmailJSBaseURL:           getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com"),
		EmailJSServiceID:         getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSOrderTemplateID:   getEnv("EMAILJS_ORDER_TEMPLATE_ID", ""),
		EmailJSContactTemplateID: getEnv("EMAILJS_CONTACT_TEMPLATE_ID", ""),
		EmailJSPublicKey:         getEnv("EMAILJS_PUBLIC_KEY", ""),
		OrderRecipient:           getEnv("ORDER_RECIPIENT_EMAIL", "kareemkhamis2030@gmail.com"),
	}
}

// CatalogURL resolves the snapshot endpoint: the configured API base path if
// present, else the static resource path.
func (c *Config) CatalogURL() string {
	if c.CatalogAPIURL != "" {
		return strings.TrimSuffix(c.CatalogAPIURL, "/") + "/api/initial-products.json"
	}
	return c.CatalogSnapshotURL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
