package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/config"
	"ellavera-site/internal/models"
	"ellavera-site/internal/service"
	"ellavera-site/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
	config      *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, config: cfg}
}

const (
	authTokenTTLSeconds = 72 * 60 * 60
	csrfTokenBytes      = 32
	adminHomePath       = "/admin"
)

// cookieConfig holds cookie configuration
type cookieConfig struct {
	name     string
	value    string
	maxAge   int
	httpOnly bool
}

func generateCSRFToken() (string, error) {
	token := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(token), nil
}

// setCookie is a unified method for setting cookies with proper security settings
func (h *AuthHandler) setCookie(c *gin.Context, cfg cookieConfig) {
	secure := c.Request.TLS != nil || h.config.CookieSecure
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.name, cfg.value, cfg.maxAge, "/", "", secure, cfg.httpOnly)
}

func (h *AuthHandler) setSession(c *gin.Context, token string) (string, error) {
	maxAge := authTokenTTLSeconds
	if info, err := h.authService.InspectToken(token); err == nil && !info.ExpiresAt.IsZero() {
		maxAge = int(time.Until(info.ExpiresAt).Seconds())
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		return "", err
	}

	h.setCookie(c, cookieConfig{name: h.config.AuthCookieName, value: token, maxAge: maxAge, httpOnly: true})
	h.setCookie(c, cookieConfig{name: h.config.CSRFCookieName, value: csrfToken, maxAge: maxAge, httpOnly: false})
	return csrfToken, nil
}

func (h *AuthHandler) clearSession(c *gin.Context) {
	h.setCookie(c, cookieConfig{name: h.config.AuthCookieName, value: "", maxAge: -1, httpOnly: true})
	h.setCookie(c, cookieConfig{name: h.config.CSRFCookieName, value: "", maxAge: -1, httpOnly: false})
}

func isJSONRequest(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "application/json")
}

func bindAuthRequest(c *gin.Context, req interface{}) error {
	if isJSONRequest(c) {
		return c.ShouldBindJSON(req)
	}
	return c.ShouldBind(req)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindAuthRequest(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": response.User})
}

// Login forwards credentials and keeps the issued token in an HttpOnly
// cookie. Form posts from the login page are redirected into the admin.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindAuthRequest(c, &req); err != nil {
		if !isJSONRequest(c) {
			c.Redirect(http.StatusSeeOther, "/admin/login?error=invalid")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithField("email", req.Email).Warn("Login rejected")
		if !isJSONRequest(c) {
			c.Redirect(http.StatusSeeOther, "/admin/login?error=credentials")
			return
		}
		respondError(c, err)
		return
	}

	csrfToken, err := h.setSession(c, response.AccessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate CSRF token"})
		return
	}

	if !isJSONRequest(c) {
		c.Redirect(http.StatusSeeOther, safeNext(c.PostForm("next")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       response.User,
		"token_type": response.TokenType,
		"csrf_token": csrfToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSession(c)
	if !isJSONRequest(c) && c.Request.Method == http.MethodPost && c.GetHeader("X-CSRF-Token") == "" {
		c.Redirect(http.StatusSeeOther, "/admin/login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// safeNext keeps post-login redirects inside the admin.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, adminHomePath) || strings.HasPrefix(next, "//") || strings.Contains(next, "://") {
		return adminHomePath
	}
	return next
}
