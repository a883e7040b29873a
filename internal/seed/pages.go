package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"ellavera-site/internal/models"
	"ellavera-site/pkg/logger"
)

//go:embed data/pages.yaml
var defaultPagesFS embed.FS

type sectionDefinition struct {
	SectionName string                 `yaml:"section_name"`
	SectionType string                 `yaml:"section_type"`
	Content     map[string]interface{} `yaml:"content"`
	Hidden      bool                   `yaml:"hidden"`
}

var (
	loadOnce    sync.Once
	definitions map[string][]sectionDefinition
	loadErr     error
)

func load() (map[string][]sectionDefinition, error) {
	loadOnce.Do(func() {
		data, err := defaultPagesFS.ReadFile("data/pages.yaml")
		if err != nil {
			loadErr = fmt.Errorf("failed to read embedded page sections: %w", err)
			return
		}
		parsed := make(map[string][]sectionDefinition)
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			loadErr = fmt.Errorf("failed to parse embedded page sections: %w", err)
			return
		}
		definitions = parsed
	})
	return definitions, loadErr
}

// Pages lists the pages that ship with default sections.
func Pages() []string {
	defs, err := load()
	if err != nil {
		return nil
	}
	pages := make([]string, 0, len(defs))
	for page := range defs {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// DefaultSections returns the default sections of a page, ordered from 1.
// Content is normalised to the shapes a JSON decode produces.
func DefaultSections(pageName string) ([]models.PageSectionRequest, error) {
	defs, err := load()
	if err != nil {
		return nil, err
	}

	pageName = strings.ToLower(strings.TrimSpace(pageName))
	list, ok := defs[pageName]
	if !ok {
		return nil, fmt.Errorf("no default sections for page %q", pageName)
	}

	requests := make([]models.PageSectionRequest, 0, len(list))
	for i, def := range list {
		content, err := jsonContent(def.Content)
		if err != nil {
			return nil, fmt.Errorf("page %s section %d: %w", pageName, i+1, err)
		}
		requests = append(requests, models.PageSectionRequest{
			PageName:    pageName,
			SectionName: def.SectionName,
			SectionType: def.SectionType,
			Content:     content,
			Order:       i + 1,
			Visible:     !def.Hidden,
		})
	}
	return requests, nil
}

func jsonContent(raw map[string]interface{}) (models.JSONMap, error) {
	if raw == nil {
		return models.JSONMap{}, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var content models.JSONMap
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// SectionStore is the part of the backend the seeder writes through.
type SectionStore interface {
	ListSections(ctx context.Context, pageName string) ([]models.PageSection, error)
	CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error)
}

// Result reports what EnsurePage did.
type Result struct {
	PageName string `json:"page_name"`
	Created  int    `json:"created"`
	Skipped  bool   `json:"skipped"`
}

// EnsurePage creates the default sections of a page that has none. A page
// with any stored section is left alone.
func EnsurePage(ctx context.Context, store SectionStore, pageName string) (Result, error) {
	result := Result{PageName: pageName}

	defaults, err := DefaultSections(pageName)
	if err != nil {
		return result, err
	}

	existing, err := store.ListSections(ctx, pageName)
	if err != nil {
		return result, fmt.Errorf("failed to check page %s: %w", pageName, err)
	}
	if len(existing) > 0 {
		result.Skipped = true
		logger.Info("Default sections already present", map[string]interface{}{"page": pageName})
		return result, nil
	}

	for _, req := range defaults {
		if _, err := store.CreateSection(ctx, req); err != nil {
			return result, fmt.Errorf("failed to create section %q on %s: %w", req.SectionName, pageName, err)
		}
		result.Created++
	}

	logger.Info("Ensured default sections", map[string]interface{}{"page": pageName, "created": result.Created})
	return result, nil
}

// EnsureDefaultPages seeds every page that ships defaults. Failures are
// logged and do not stop the remaining pages.
func EnsureDefaultPages(ctx context.Context, store SectionStore) []Result {
	pages := Pages()
	results := make([]Result, 0, len(pages))
	for _, page := range pages {
		result, err := EnsurePage(ctx, store, page)
		if err != nil {
			logger.Error(err, "Failed to seed default sections", map[string]interface{}{"page": page})
		}
		results = append(results, result)
	}
	return results
}
