package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sections"
	"ellavera-site/internal/seed"
	"ellavera-site/internal/service"
	"ellavera-site/internal/sitestate"
	"ellavera-site/pkg/logger"
)

const (
	pageLoadFailedMessage = "Failed to load page content"
	leadSentMessage       = "Message sent successfully! We'll get back to you soon."
	leadFailedMessage     = "Failed to send message. Please try again."

	sectionClassPrefix = "page"
)

func (h *TemplateHandler) RenderHome(c *gin.Context) {
	h.renderSectionPage(c, service.PageHome, "section_page", "", nil)
}

func (h *TemplateHandler) RenderAbout(c *gin.Context) {
	title := sitestate.PageTitle(h.siteSettings(), "about")
	h.renderSectionPage(c, service.PageAbout, "section_page", title.Title, nil)
}

func (h *TemplateHandler) RenderContact(c *gin.Context) {
	extra := gin.H{"Form": models.ContactLeadRequest{}}
	if c.Query("sent") == "1" {
		extra["Success"] = leadSentMessage
	}
	h.renderContactPage(c, extra)
}

// SubmitContact handles the contact form posted without JavaScript. A
// successful submission redirects so a reload does not post again.
func (h *TemplateHandler) SubmitContact(c *gin.Context) {
	var form models.ContactLeadRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderContactPage(c, gin.H{
			"Form":       form,
			"Error":      "Please check the form and try again.",
			"StatusCode": http.StatusBadRequest,
		})
		return
	}

	if _, err := h.leads.Submit(c.Request.Context(), form); err != nil {
		extra := gin.H{"Form": form, "Error": leadFailedMessage, "StatusCode": http.StatusBadGateway}
		if errors.Is(err, service.ErrInvalidInput) {
			extra["Error"] = upperFirst(err.Error())
			extra["StatusCode"] = http.StatusBadRequest
		} else {
			logger.FromContext(c.Request.Context()).WithError(err).Warn("Contact form submission failed")
		}
		h.renderContactPage(c, extra)
		return
	}

	c.Redirect(http.StatusSeeOther, "/contact?sent=1#contact-form")
}

func (h *TemplateHandler) renderContactPage(c *gin.Context, extra gin.H) {
	settings := h.siteSettings()
	extra["Contact"] = sitestate.Contact(settings)
	title := sitestate.PageTitle(settings, "contact")
	h.renderSectionPage(c, service.PageContact, "contact", title.Title, extra)
}

// renderSectionPage renders the stored sections of a page. A failed load
// renders the page shell with a notice instead of a partial page.
func (h *TemplateHandler) renderSectionPage(c *gin.Context, pageName, templateName, title string, extra gin.H) {
	data := gin.H{"PageName": pageName}
	for k, v := range extra {
		data[k] = v
	}

	view, err := h.pages.Load(c.Request.Context(), pageName)
	if err != nil {
		data["LoadError"] = pageLoadFailedMessage
	} else {
		ctx := sections.NewRenderContext(h.sanitizer.Sanitize, view.Data)
		data["Sections"] = template.HTML(sections.RenderPage(h.registry, ctx, sectionClassPrefix, view.Sections))
	}

	h.renderTemplate(c, templateName, title, "", data)
}

func (h *TemplateHandler) RenderProducts(c *gin.Context) {
	settings := h.siteSettings()
	catalog, err := h.content.ProductCatalog(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		h.renderLoadError(c, err, "products")
		return
	}

	title := sitestate.PageTitle(settings, "products")
	h.renderTemplate(c, "products", title.Title, title.Subtitle, gin.H{
		"PageTitle": title,
		"Catalog":   catalog,
	})
}

func (h *TemplateHandler) RenderProduct(c *gin.Context) {
	product, err := h.content.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderLoadError(c, err, "product")
		return
	}

	h.renderTemplate(c, "product", product.Name, product.Description, gin.H{
		"Product": product,
	})
}

func (h *TemplateHandler) RenderArticles(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	all, err := h.content.PublishedArticles(c.Request.Context(), "")
	if err != nil {
		h.renderLoadError(c, err, "articles")
		return
	}

	articles := all
	if category != "" {
		articles = make([]models.Article, 0, len(all))
		for _, article := range all {
			if article.Category == category {
				articles = append(articles, article)
			}
		}
	}

	title := sitestate.PageTitle(h.siteSettings(), "articles")
	h.renderTemplate(c, "articles", title.Title, title.Subtitle, gin.H{
		"PageTitle":  title,
		"Articles":   articles,
		"Categories": articleCategories(all),
		"Category":   category,
	})
}

func (h *TemplateHandler) RenderArticle(c *gin.Context) {
	view, err := h.content.Article(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderLoadError(c, err, "article")
		return
	}

	title := view.Article.MetaTitle
	if strings.TrimSpace(title) == "" {
		title = view.Article.Title
	}
	description := view.Article.MetaDescription
	if strings.TrimSpace(description) == "" {
		description = view.Article.Excerpt
	}

	h.renderTemplate(c, "article", title, description, gin.H{
		"Article": view.Article,
		"Body":    template.HTML(view.Body),
	})
}

func (h *TemplateHandler) RenderServices(c *gin.Context) {
	services, err := h.content.Services(c.Request.Context())
	if err != nil {
		h.renderLoadError(c, err, "services")
		return
	}

	title := sitestate.PageTitle(h.siteSettings(), "services")
	h.renderTemplate(c, "services", title.Title, title.Subtitle, gin.H{
		"PageTitle": title,
		"Services":  services,
	})
}

func (h *TemplateHandler) RenderService(c *gin.Context) {
	svc, err := h.content.Service(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderLoadError(c, err, "service")
		return
	}

	h.renderTemplate(c, "service", svc.Name, svc.ShortDescription, gin.H{
		"Service": svc,
	})
}

func (h *TemplateHandler) RenderClients(c *gin.Context) {
	clients, err := h.content.Clients(c.Request.Context())
	if err != nil {
		h.renderLoadError(c, err, "clients")
		return
	}

	title := sitestate.PageTitle(h.siteSettings(), "clients")
	h.renderTemplate(c, "clients", title.Title, title.Subtitle, gin.H{
		"PageTitle": title,
		"Clients":   clients,
	})
}

func (h *TemplateHandler) RenderGallery(c *gin.Context) {
	gallery, err := h.content.Gallery(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		h.renderLoadError(c, err, "gallery")
		return
	}

	title := sitestate.PageTitle(h.siteSettings(), "gallery")
	h.renderTemplate(c, "gallery", title.Title, title.Subtitle, gin.H{
		"PageTitle": title,
		"Gallery":   gallery,
	})
}

// RenderLogin shows the admin sign-in form.
func (h *TemplateHandler) RenderLogin(c *gin.Context) {
	next := safeNext(c.Query("next"))
	extra := gin.H{
		"Next":      next,
		"NoIndex":   true,
		"BodyClass": "auth-page",
	}
	switch c.Query("error") {
	case "credentials":
		extra["Error"] = "Invalid email or password."
	case "invalid":
		extra["Error"] = "Please enter your email and password."
	}

	h.renderTemplate(c, "login", "Admin Login", "", extra)
}

type adminTab struct {
	Key   string
	Label string
}

var adminTabs = []adminTab{
	{Key: "sections", Label: "Page Sections"},
	{Key: "products", Label: "Products"},
	{Key: "categories", Label: "Categories"},
	{Key: "articles", Label: "Articles"},
	{Key: "services", Label: "Services"},
	{Key: "gallery", Label: "Gallery"},
	{Key: "clients", Label: "Clients"},
	{Key: "reviews", Label: "Reviews"},
	{Key: "leads", Label: "Leads"},
	{Key: "settings", Label: "Settings"},
	{Key: "theme", Label: "Theme"},
	{Key: "backup", Label: "Backup"},
}

// RenderAdmin serves the dashboard shell; the editor itself talks to the
// admin JSON API.
func (h *TemplateHandler) RenderAdmin(c *gin.Context) {
	pages := seed.Pages()
	csrfCookie := ""
	if h.config != nil {
		csrfCookie = h.config.CSRFCookieName
	}

	h.renderTemplate(c, "admin", "Admin Dashboard", "", gin.H{
		"AdminTabs":        adminTabs,
		"EditablePageList": pages,
		"EditablePages":    strings.Join(pages, ","),
		"CSRFCookieName":   csrfCookie,
		"NoIndex":          true,
		"BodyClass":        "admin-page",
		"Scripts":          []string{"/static/js/admin.js"},
	})
}

// NotFound answers unmatched routes: JSON under /api, a rendered page
// elsewhere.
func (h *TemplateHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.renderError(c, http.StatusNotFound, "404 - Page Not Found", "The page you are looking for does not exist.")
}

func (h *TemplateHandler) renderLoadError(c *gin.Context, err error, what string) {
	if errors.Is(err, repository.ErrNotFound) {
		h.NotFound(c)
		return
	}

	logger.FromContext(c.Request.Context()).WithError(err).WithField("page", what).Warn("Failed to load public page")
	h.renderError(c, http.StatusBadGateway, "502 - Content Unavailable", pageLoadFailedMessage)
}

// articleCategories lists the distinct categories of articles in first-seen
// order.
func articleCategories(articles []models.Article) []string {
	seen := make(map[string]struct{}, len(articles))
	categories := make([]string, 0)
	for _, article := range articles {
		category := strings.TrimSpace(article.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	return categories
}

func upperFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
