package handlers

import (
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"ellavera-site/internal/config"
	"ellavera-site/internal/sections"
	"ellavera-site/internal/service"
)

// TemplateHandler renders the public site and the admin shell pages.
type TemplateHandler struct {
	pages     *service.PageService
	content   *service.ContentService
	site      *service.SiteService
	leads     *service.LeadService
	registry  *sections.Registry
	templates *template.Template
	config    *config.Config
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

func NewTemplateHandler(
	pages *service.PageService,
	content *service.ContentService,
	site *service.SiteService,
	leads *service.LeadService,
	registry *sections.Registry,
	cfg *config.Config,
	templates *template.Template,
) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if registry == nil {
		registry = sections.DefaultRegistry()
	}

	return &TemplateHandler{
		pages:     pages,
		content:   content,
		site:      site,
		leads:     leads,
		registry:  registry,
		templates: templates,
		config:    cfg,
		sanitizer: newSectionPolicy(),
		now:       time.Now,
	}, nil
}
