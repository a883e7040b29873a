package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRobotsDirectives = "noindex, nofollow"

// NoIndexMiddleware keeps admin responses out of search indexes and shared
// caches. Directives, when given, replace the default robots tag.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	value := defaultRobotsDirectives
	if cleaned := uniqueSources(directives); len(cleaned) > 0 {
		value = strings.Join(cleaned, ", ")
	}

	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", value)
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
