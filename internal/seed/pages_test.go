package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

type memoryStore struct {
	existing []models.PageSection
	created  []models.PageSectionRequest
	failAt   int
}

func (m *memoryStore) ListSections(ctx context.Context, pageName string) ([]models.PageSection, error) {
	return m.existing, nil
}

func (m *memoryStore) CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error) {
	if m.failAt > 0 && len(m.created)+1 == m.failAt {
		return nil, errors.New("backend down")
	}
	m.created = append(m.created, req)
	return &models.PageSection{ID: req.SectionName, PageName: req.PageName, SectionType: req.SectionType}, nil
}

func TestDefaultSectionsShape(t *testing.T) {
	home, err := DefaultSections("home")
	if err != nil {
		t.Fatalf("expected home defaults, got %v", err)
	}
	if len(home) != 5 {
		t.Fatalf("expected 5 home sections, got %d", len(home))
	}
	for i, section := range home {
		if section.Order != i+1 || !section.Visible || section.PageName != "home" {
			t.Fatalf("unexpected section %+v", section)
		}
	}

	hero := sections.DecodeSection(models.PageSection{SectionType: home[0].SectionType, Content: home[0].Content})
	heroContent, ok := hero.(sections.HeroContent)
	if !ok || heroContent.TitleHighlight != "Ellavera Beauty" {
		t.Fatalf("expected seeded hero, got %#v", hero)
	}

	steps, ok := home[3].Content["steps"].([]interface{})
	if !ok || len(steps) != 6 {
		t.Fatalf("expected six process steps, got %#v", home[3].Content["steps"])
	}
	if first, _ := steps[0].(map[string]interface{}); first["step"] != "01" {
		t.Fatalf("expected string step labels, got %#v", steps[0])
	}

	for _, page := range Pages() {
		list, err := DefaultSections(page)
		if err != nil {
			t.Fatalf("page %s: %v", page, err)
		}
		for _, section := range list {
			if !sections.IsKnownType(section.SectionType) {
				continue
			}
			for _, warning := range sections.Validate(section.SectionType, section.Content) {
				if !strings.HasPrefix(warning.Message, "missing") {
					t.Fatalf("page %s section %s: %s", page, section.SectionName, warning)
				}
			}
		}
	}
}

func TestEnsurePage(t *testing.T) {
	store := &memoryStore{}
	result, err := EnsurePage(context.Background(), store, "about")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Created != 3 || len(store.created) != 3 {
		t.Fatalf("expected 3 created sections, got %+v", result)
	}

	store = &memoryStore{existing: []models.PageSection{{ID: "1"}}}
	result, err = EnsurePage(context.Background(), store, "about")
	if err != nil || !result.Skipped || len(store.created) != 0 {
		t.Fatalf("expected a page with sections to be skipped, got %+v %v", result, err)
	}

	store = &memoryStore{failAt: 2}
	result, err = EnsurePage(context.Background(), store, "contact")
	if err == nil || result.Created != 1 {
		t.Fatalf("expected to stop at the failing section, got %+v %v", result, err)
	}

	if _, err := EnsurePage(context.Background(), &memoryStore{}, "unknown"); err == nil {
		t.Fatalf("expected error for a page without defaults")
	}
}
