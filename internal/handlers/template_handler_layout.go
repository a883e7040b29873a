package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sitestate"
	"ellavera-site/pkg/logger"
	"ellavera-site/pkg/utils"
)

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	settings := h.siteSettings()
	theme := sitestate.DefaultTheme()
	style := sitestate.ThemeStyle(theme)
	dark := false
	if h.site != nil {
		state := h.site.Theme()
		theme = state.Current()
		style = state.Style()
		dark = state.Dark()
	}

	documentTitle := sitestate.DocumentTitle(settings)
	if title != "" {
		documentTitle = fmt.Sprintf("%s - %s", title, h.siteName(settings))
	}
	if description == "" && settings != nil {
		description = settings.SiteTagline
	}

	data := gin.H{
		"Title":       documentTitle,
		"Description": description,
		"Site": gin.H{
			"Name":    h.siteName(settings),
			"Favicon": sitestate.Favicon(settings),
			"URL":     h.siteURL(),
		},
		"Header":     sitestate.Header(settings),
		"Footer":     sitestate.Footer(settings, h.now()),
		"WhatsApp":   sitestate.WhatsAppLink(settings),
		"ThemeStyle": template.CSS(style),
		"DarkMode":   dark,
		"FontsURL":   sitestate.FontsURL(theme),
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

// siteSettings returns nil until the settings holder is ready.
func (h *TemplateHandler) siteSettings() *models.SiteSettings {
	if h.site == nil {
		return nil
	}
	return h.site.Settings()
}

func (h *TemplateHandler) siteName(settings *models.SiteSettings) string {
	if settings != nil && strings.TrimSpace(settings.SiteName) != "" {
		return settings.SiteName
	}
	if h.config != nil && strings.TrimSpace(h.config.SiteName) != "" {
		return h.config.SiteName
	}
	return sitestate.DefaultSiteName
}

func (h *TemplateHandler) siteURL() string {
	if h.config == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(h.config.SiteURL), "/")
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	if templateName == "" {
		templateName = "section_page"
	}

	h.renderWithLayout(c, "base.html", templateName+".html", data)
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, layout, content string, data gin.H) {
	h.setNavigationState(c, data)

	if _, exists := data["Canonical"]; !exists {
		if base := h.siteURL(); base != "" {
			data["Canonical"] = h.buildCanonicalURL(base, c.Request.URL)
		}
	}

	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": content})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": content})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render content")
		return
	}

	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup(layout)
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layout})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": layout})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render layout")
		return
	}

	status := http.StatusOK
	if value, ok := data["StatusCode"].(int); ok && value > 0 {
		status = value
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	data := gin.H{
		"Title":      title,
		"Message":    msg,
		"StatusCode": status,
		"SiteName":   h.siteName(h.siteSettings()),
	}

	errorTmpl := h.templates.Lookup("error.html")
	if errorTmpl == nil {
		logger.Error(nil, "Error template missing", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	output, err := h.executeTemplate(errorTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render error template", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	path := c.Request.URL.Path
	cleanedPath := utils.NormalizePath(path)
	data["ActivePath"] = cleanedPath

	if _, exists := data["ActiveNav"]; exists {
		return
	}

	active := ""

	switch {
	case cleanedPath == "/" || cleanedPath == "":
		active = "home"
	case strings.HasPrefix(cleanedPath, "/products"):
		active = "products"
	case strings.HasPrefix(cleanedPath, "/services"):
		active = "services"
	case strings.HasPrefix(cleanedPath, "/gallery"):
		active = "gallery"
	case strings.HasPrefix(cleanedPath, "/clients"):
		active = "clients"
	case strings.HasPrefix(cleanedPath, "/articles"):
		active = "articles"
	case strings.HasPrefix(cleanedPath, "/about"):
		active = "about"
	case strings.HasPrefix(cleanedPath, "/contact"):
		active = "contact"
	case strings.HasPrefix(cleanedPath, "/admin"):
		active = "admin"
	}

	data["ActiveNav"] = active
}

func (h *TemplateHandler) buildCanonicalURL(base string, requestURL *url.URL) string {
	if requestURL == nil {
		return strings.TrimSuffix(base, "/")
	}

	cleaned := *requestURL
	cleaned.Fragment = ""

	if rawQuery := cleaned.Query(); len(rawQuery) > 0 {
		for key := range rawQuery {
			lower := strings.ToLower(key)
			if strings.HasPrefix(lower, "utm_") || lower == "fbclid" || lower == "gclid" || lower == "sent" {
				rawQuery.Del(key)
			}
		}
		cleaned.RawQuery = rawQuery.Encode()
	}

	path := utils.NormalizePath(cleaned.Path)
	canonical := path
	if cleaned.RawQuery != "" {
		canonical = canonical + "?" + cleaned.RawQuery
	}

	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return canonical
	}

	return base + canonical
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
