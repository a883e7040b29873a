package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/models"
	"ellavera-site/internal/service"
)

// SiteHandler serves the settings and theme of the site. Reads come from
// the in-process state, writes go to the backend first.
type SiteHandler struct {
	service *service.SiteService
}

func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{service: siteService}
}

func (h *SiteHandler) GetSettings(c *gin.Context) {
	settings := h.service.Settings()
	if settings == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "site settings are not available",
			"state": h.service.SettingsState().String(),
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SiteHandler) UpdateSettings(c *gin.Context) {
	var update models.SiteSettingsUpdate
	if !bindJSON(c, &update) {
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SiteHandler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Theme().Current())
}

func (h *SiteHandler) UpdateTheme(c *gin.Context) {
	var update models.ThemeUpdate
	if !bindJSON(c, &update) {
		return
	}

	theme, err := h.service.UpdateTheme(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// ThemeCSS serves the custom properties of the current theme, so cached
// pages pick up theme changes without a reload of the HTML.
func (h *SiteHandler) ThemeCSS(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(h.service.Theme().Style()))
}
