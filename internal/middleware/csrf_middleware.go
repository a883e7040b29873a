package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CSRFHeaderName = "X-CSRF-Token"

var stateChangingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// Public forms and the session endpoints are reachable without a CSRF cookie.
var csrfExemptPaths = map[string]struct{}{
	"/contact":           {},
	"/api/contact":       {},
	"/api/auth/login":    {},
	"/api/auth/register": {},
	"/api/auth/logout":   {},
	"/admin/login":       {},
}

// CSRFMiddleware applies the double submit check to cookie authenticated
// requests: the CSRF cookie must match the X-CSRF-Token header.
func CSRFMiddleware(authCookieName, csrfCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, shouldCheck := stateChangingMethods[c.Request.Method]; !shouldCheck {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		if _, exempt := csrfExemptPaths[path]; exempt {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			c.Next()
			return
		}

		tokenCookie, err := c.Cookie(authCookieName)
		if err != nil || strings.TrimSpace(tokenCookie) == "" {
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(csrfCookieName)
		if err != nil || strings.TrimSpace(csrfCookie) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing CSRF token"})
			return
		}

		headerToken := strings.TrimSpace(c.GetHeader(CSRFHeaderName))
		if headerToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing CSRF header"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(csrfCookie), []byte(headerToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid CSRF token"})
			return
		}

		c.Next()
	}
}
