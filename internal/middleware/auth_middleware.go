package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/repository"
	"ellavera-site/internal/service"
	"ellavera-site/pkg/logger"
)

// TokenInspector reads the claims of a backend issued token.
type TokenInspector interface {
	InspectToken(token string) (*service.TokenInfo, error)
}

// TokenFromRequest returns the bearer token of the request, falling back to
// the auth cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		bearerToken := strings.SplitN(authHeader, " ", 2)
		if len(bearerToken) == 2 && strings.EqualFold(bearerToken[0], "Bearer") {
			return strings.TrimSpace(bearerToken[1])
		}
	}

	if cookieToken, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookieToken)
	}
	return ""
}

// AuthMiddleware guards the admin API. Requests without a readable, unexpired
// token are rejected with 401; accepted tokens travel with the request
// context to every backend call.
func AuthMiddleware(cookieName string, inspector TokenInspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c, cookieName)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization credentials required"})
			c.Abort()
			return
		}

		if !authenticate(c, tokenString, inspector) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminPageMiddleware guards the admin HTML pages and sends anonymous
// visitors to loginPath.
func AdminPageMiddleware(cookieName string, inspector TokenInspector, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c, cookieName)
		if tokenString == "" || !authenticate(c, tokenString, inspector) {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokenString string, inspector TokenInspector) bool {
	info, err := inspector.InspectToken(tokenString)
	if err != nil {
		return false
	}

	c.Set("auth_token", tokenString)
	c.Set("user_subject", info.Subject)

	ctx := repository.WithToken(c.Request.Context(), tokenString)
	if info.Subject != "" {
		ctx = logger.ContextWithFields(ctx, map[string]interface{}{"user": info.Subject})
	}
	c.Request = c.Request.WithContext(ctx)
	return true
}
