package middleware

import (
	"net/http"

	"ellavera-site/internal/config"

	"github.com/gin-gonic/gin"
)

type operationLimit struct {
	name     string
	requests int
	window   int
	message  string
}

// LeadRateLimitMiddleware limits contact form submissions per IP.
// Default: 5 requests per 600 seconds
func LeadRateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return operationRateLimit(manager, operationLimit{
		name:     OperationLead,
		requests: withDefault(cfg.LeadRateLimitRequests, 5),
		window:   withDefault(cfg.LeadRateLimitWindow, 600),
		message:  "Too many messages sent. Please try again later.",
	})
}

// UploadRateLimitMiddleware limits file upload operations per IP
// Default: 10 requests per 300 seconds (5 minutes)
func UploadRateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return operationRateLimit(manager, operationLimit{
		name:     OperationUpload,
		requests: withDefault(cfg.UploadRateLimitRequests, 10),
		window:   withDefault(cfg.UploadRateLimitWindow, 300),
		message:  "Too many upload requests. Please try again later.",
	})
}

// BackupRateLimitMiddleware limits backup downloads per IP
// Default: 5 requests per 3600 seconds (1 hour)
func BackupRateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return operationRateLimit(manager, operationLimit{
		name:     OperationBackup,
		requests: withDefault(cfg.BackupRateLimitRequests, 5),
		window:   withDefault(cfg.BackupRateLimitWindow, 3600),
		message:  "Too many backup requests. Please try again later.",
	})
}

func operationRateLimit(manager *RateLimitManager, limit operationLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetOperationLimiter(c.ClientIP(), limit.name, limit.requests, limit.window)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":          limit.name + " rate limit exceeded",
				"message":        limit.message,
				"retry_after":    limit.window,
				"max_requests":   limit.requests,
				"window_seconds": limit.window,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func withDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
