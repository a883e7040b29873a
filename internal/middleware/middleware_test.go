package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/config"
	"ellavera-site/internal/service"
)

type stubInspector struct {
	subject string
	valid   map[string]bool
}

func (s stubInspector) InspectToken(token string) (*service.TokenInfo, error) {
	if !s.valid[token] {
		return nil, service.ErrInvalidToken
	}
	return &service.TokenInfo{Subject: s.subject, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get("X-Request-ID")
	if len(generated) != 36 || rec.Body.String() != generated {
		t.Fatalf("expected a generated uuid, got header %q body %q", generated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected incoming request id to be kept, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestAuthMiddleware(t *testing.T) {
	inspector := stubInspector{subject: "admin@ellavera.com", valid: map[string]bool{"good": true}}

	router := gin.New()
	router.Use(AuthMiddleware("auth_token", inspector))
	router.GET("/api/admin", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_subject"))
	})

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer good", status: http.StatusOK},
		{name: "cookie", cookie: "good", status: http.StatusOK},
		{name: "invalid", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "malformed header falls back to cookie", header: "Token good", cookie: "good", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusOK && rec.Body.String() != "admin@ellavera.com" {
				t.Fatalf("expected subject in context, got %q", rec.Body.String())
			}
		})
	}
}

func TestAdminPageMiddlewareRedirects(t *testing.T) {
	router := gin.New()
	router.Use(AdminPageMiddleware("auth_token", stubInspector{}, "/admin/login"))
	router.GET("/admin/pages", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/pages?page=home", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/admin/login?next=%2Fadmin%2Fpages%3Fpage%3Dhome" {
		t.Fatalf("unexpected redirect target %q", location)
	}
}

func TestCSRFMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CSRFMiddleware("auth_token", "csrf_token"))
	router.POST("/api/admin/settings", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.POST("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(path string, cookies map[string]string, header string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		for name, value := range cookies {
			req.AddCookie(&http.Cookie{Name: name, Value: value})
		}
		if header != "" {
			req.Header.Set(CSRFHeaderName, header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	session := map[string]string{"auth_token": "tok", "csrf_token": "nonce"}

	if code := send("/api/admin/settings", nil, ""); code != http.StatusNoContent {
		t.Fatalf("expected requests without a session cookie to pass, got %d", code)
	}
	if code := send("/api/admin/settings", session, ""); code != http.StatusForbidden {
		t.Fatalf("expected missing header to be rejected, got %d", code)
	}
	if code := send("/api/admin/settings", session, "other"); code != http.StatusForbidden {
		t.Fatalf("expected mismatched token to be rejected, got %d", code)
	}
	if code := send("/api/admin/settings", session, "nonce"); code != http.StatusNoContent {
		t.Fatalf("expected matching token to pass, got %d", code)
	}
	if code := send("/contact", session, ""); code != http.StatusNoContent {
		t.Fatalf("expected the public contact form to be exempt, got %d", code)
	}
}

func TestLeadRateLimitMiddleware(t *testing.T) {
	manager := NewRateLimitManager(t.Context())
	defer manager.Shutdown()

	cfg := &config.Config{LeadRateLimitRequests: 2, LeadRateLimitWindow: 600}
	router := gin.New()
	router.POST("/contact", LeadRateLimitMiddleware(cfg, manager), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third submission to be limited, got %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected another visitor to have its own budget, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewareBypassesStatic(t *testing.T) {
	manager := NewRateLimitManager(t.Context())
	defer manager.Shutdown()

	cfg := &config.Config{RateLimitRequests: 1, RateLimitWindow: 60}
	router := gin.New()
	router.Use(RateLimitMiddleware(cfg, manager))
	router.GET("/static/app.css", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/about", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected static assets to bypass the limiter, got %d", rec.Code)
		}
	}

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/about", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/about", nil))
	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second page request to be limited, got %d then %d", first.Code, second.Code)
	}
}

func TestRateLimitManagerCleanup(t *testing.T) {
	manager := NewRateLimitManager(t.Context())
	defer manager.Shutdown()

	manager.GetVisitor("1.1.1.1", 10, 60, 0)
	manager.GetOperationLimiter("1.1.1.1", OperationUpload, 5, 300)

	manager.cleanup(time.Now().Add(2 * time.Hour))

	manager.visitorsMu.RLock()
	visitors := len(manager.visitors)
	manager.visitorsMu.RUnlock()
	manager.operationsMu.RLock()
	operations := len(manager.operations)
	manager.operationsMu.RUnlock()

	if visitors != 0 || operations != 0 {
		t.Fatalf("expected idle limiters to be removed, got %d visitors and %d operations", visitors, operations)
	}

	if manager.GetOperationLimiter("1.1.1.1", "", 5, 60) != nil {
		t.Fatalf("expected unnamed operations to be unlimited")
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	directives := parseContentSecurityPolicy(rec.Header().Get("Content-Security-Policy"))
	if _, ok := directives["frame-src"]["https://www.google.com"]; !ok {
		t.Fatalf("expected map embeds to be allowed, got %v", directives["frame-src"])
	}
	if _, ok := directives["style-src"]["https://fonts.googleapis.com"]; !ok {
		t.Fatalf("expected google fonts stylesheet to be allowed, got %v", directives["style-src"])
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected nosniff header")
	}
}

func TestNoIndexMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/admin", NoIndexMiddleware(" noarchive ", ""), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/admin/default", NoIndexMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Header().Get("X-Robots-Tag") != "noarchive" {
		t.Fatalf("expected custom directive, got %q", rec.Header().Get("X-Robots-Tag"))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/default", nil))
	if rec.Header().Get("X-Robots-Tag") != defaultRobotsDirectives {
		t.Fatalf("expected default directives, got %q", rec.Header().Get("X-Robots-Tag"))
	}
}
