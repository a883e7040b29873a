package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Embedded maps on the contact page are served from these origins.
var defaultFrameSources = []string{
	"https://www.google.com",
	"https://maps.google.com",
}

func SecurityHeadersMiddleware() gin.HandlerFunc {
	policy := buildContentSecurityPolicy(defaultFrameSources, nil)

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Download-Options", "noopen")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("Content-Security-Policy", policy)
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Next()
	}
}

// buildContentSecurityPolicy allows inline styles for theme variables, Google
// Fonts, remote and data URL images, plus the given frame and media origins.
func buildContentSecurityPolicy(frameSrc, mediaSrc []string) string {
	directives := []struct {
		name   string
		values []string
	}{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{"'self'"}},
		{"style-src", []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"}},
		{"font-src", []string{"'self'", "data:", "https://fonts.gstatic.com"}},
		{"img-src", []string{"'self'", "data:", "blob:", "https:"}},
		{"media-src", append([]string{"'self'", "data:", "blob:"}, mediaSrc...)},
		{"frame-src", append([]string{"'self'"}, frameSrc...)},
		{"connect-src", []string{"'self'"}},
		{"object-src", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
		{"frame-ancestors", []string{"'self'"}},
	}

	parts := make([]string, 0, len(directives))
	for _, directive := range directives {
		parts = append(parts, directive.name+" "+strings.Join(uniqueSources(directive.values), " "))
	}
	return strings.Join(parts, "; ")
}

func uniqueSources(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
