package middleware

import (
	"net/http"
	"strings"
	"time"

	"ellavera-site/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits the request rate per IP. A nil manager disables it.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// unlimitedPaths are cheap GETs that browsers fetch alongside every page.
var unlimitedPaths = map[string]struct{}{
	"/health":      {},
	"/metrics":     {},
	"/theme.css":   {},
	"/favicon.ico": {},
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	if strings.HasPrefix(r.URL.Path, "/static/") {
		return true
	}
	_, ok := unlimitedPaths[r.URL.Path]
	return ok
}
