package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Backend
	BackendURL     string
	BackendTimeout time.Duration

	// Redis
	EnableRedis bool
	RedisURL    string
	DraftTTL    time.Duration

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Upload
	MaxUploadSize int64

	// Rate Limiting
	RateLimitRequests       int
	RateLimitWindow         int
	RateLimitBurst          int
	LeadRateLimitRequests   int
	LeadRateLimitWindow     int
	UploadRateLimitRequests int
	UploadRateLimitWindow   int
	BackupRateLimitRequests int
	BackupRateLimitWindow   int

	// Auth
	AuthCookieName string
	CSRFCookieName string
	CookieSecure   bool

	// Features
	EnableMetrics bool

	// Tracing
	OTelEndpoint    string
	OTelServiceName string

	// Site Meta
	SiteName string
	SiteURL  string
}

func New() *Config {
	c := &Config{
		// Backend
		BackendURL:     normalizeBackendURL(getEnv("BACKEND_URL", "http://localhost:8001")),
		BackendTimeout: time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 0)) * time.Second,

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", false),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		DraftTTL:    time.Duration(getEnvAsInt("DRAFT_TTL_MINUTES", 240)) * time.Minute,

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080")),

		// Upload
		MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE_MB", 5)) * 1024 * 1024,

		// Rate Limiting
		RateLimitRequests:       getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:         getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:          getEnvAsInt("RATE_LIMIT_BURST", 0),
		LeadRateLimitRequests:   getEnvAsInt("LEAD_RATE_LIMIT_REQUESTS", 5),
		LeadRateLimitWindow:     getEnvAsInt("LEAD_RATE_LIMIT_WINDOW", 600),
		UploadRateLimitRequests: getEnvAsInt("UPLOAD_RATE_LIMIT_REQUESTS", 10),
		UploadRateLimitWindow:   getEnvAsInt("UPLOAD_RATE_LIMIT_WINDOW", 300),
		BackupRateLimitRequests: getEnvAsInt("BACKUP_RATE_LIMIT_REQUESTS", 5),
		BackupRateLimitWindow:   getEnvAsInt("BACKUP_RATE_LIMIT_WINDOW", 3600),

		// Auth
		AuthCookieName: getEnv("AUTH_COOKIE_NAME", "auth_token"),
		CSRFCookieName: getEnv("CSRF_COOKIE_NAME", "csrf_token"),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Tracing
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "ellavera-site"),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "Ellavera Beauty"),
		SiteURL:  getEnv("SITE_URL", "http://localhost:8080"),
	}

	c.CookieSecure = getEnvAsBool("COOKIE_SECURE", c.IsProduction())

	return c
}

// APIBaseURL is the backend root every REST call is made against.
func (c *Config) APIBaseURL() string {
	return c.BackendURL + "/api"
}

func normalizeBackendURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, "/")
	return strings.TrimSuffix(raw, "/api")
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
