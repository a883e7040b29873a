package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestBackendURLStripsTrailingAPISegment(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://cms.example.com/api/")

	cfg := New()
	if cfg.BackendURL != "https://cms.example.com" {
		t.Fatalf("expected normalised backend url, got %q", cfg.BackendURL)
	}
	if cfg.APIBaseURL() != "https://cms.example.com/api" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL())
	}
}

func TestBackendTimeoutDefaultsToClientDefault(t *testing.T) {
	unsetEnv(t, "BACKEND_TIMEOUT_SECONDS")

	cfg := New()
	if cfg.BackendTimeout != 0 {
		t.Fatalf("expected no explicit backend timeout, got %s", cfg.BackendTimeout)
	}
}

func TestMaxUploadSizeDefaultsToFiveMegabytes(t *testing.T) {
	unsetEnv(t, "MAX_UPLOAD_SIZE_MB")

	cfg := New()
	if cfg.MaxUploadSize != 5*1024*1024 {
		t.Fatalf("expected 5MB upload limit, got %d", cfg.MaxUploadSize)
	}
}

func TestCORSOriginsIgnoresBlankEntries(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, ,https://b.example.com,")

	cfg := New()
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestCookieSecureFollowsEnvironment(t *testing.T) {
	unsetEnv(t, "COOKIE_SECURE")
	t.Setenv("ENVIRONMENT", "production")

	cfg := New()
	if !cfg.CookieSecure {
		t.Fatalf("expected secure cookies in production")
	}
}
