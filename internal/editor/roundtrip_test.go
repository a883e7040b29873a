package editor

import (
	"html/template"
	"strings"
	"testing"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

func TestEditedDefaultsRenderWithFallbacks(t *testing.T) {
	data := sections.PageData{
		Products: []models.Product{{ID: "p1", Name: "Glow Serum"}},
		Clients:  []models.Client{{ID: "c1", Name: "Lumen Labs"}},
		Reviews:  []models.Review{{ID: "r1", CustomerName: "Ayu", ReviewText: "Great partner", Rating: 5}},
	}

	// fallback picks a default value that must still render after the edit.
	cases := map[string]struct {
		path     string
		fallback func(defaults map[string]interface{}) string
	}{
		sections.TypeHero:          {path: "title", fallback: stringAt("description")},
		sections.TypeFeatures:      {path: "heading", fallback: stringAt("subheading")},
		sections.TypeServices:      {path: "heading", fallback: stringAt("subheading")},
		sections.TypeProcess:       {path: "heading", fallback: stringAt("subheading")},
		sections.TypeCTA:           {path: "heading", fallback: stringAt("description")},
		sections.TypeText:          {path: "heading", fallback: firstParagraph},
		sections.TypeVisionMission: {path: "heading", fallback: visionText},
		sections.TypeProof:         {path: "heading", fallback: stringAt("subheading")},
		sections.TypeProducts:      {path: "heading", fallback: stringAt("subheading")},
		sections.TypeClients:       {path: "heading", fallback: stringAt("subheading")},
		sections.TypeReviews:       {path: "heading", fallback: stringAt("subheading")},
	}

	registry := sections.DefaultRegistry()
	ctx := sections.NewRenderContext(nil, data)

	for _, sectionType := range sections.KnownTypes() {
		tc, ok := cases[sectionType]
		if !ok {
			t.Fatalf("no round-trip case for %s", sectionType)
		}

		defaults := sections.DefaultsFor(sectionType)
		section := models.PageSection{
			ID:          "s-" + sectionType,
			PageName:    "home",
			SectionType: sectionType,
			Content:     models.JSONMap(defaults),
			Order:       1,
			Visible:     true,
		}

		edited, err := SetField(section, tc.path, "Zq7Edited")
		if err != nil {
			t.Fatalf("%s: expected field to be set, got error: %v", sectionType, err)
		}

		html := sections.RenderPage(registry, ctx, "page", sections.VisibleOrdered([]models.PageSection{edited}))
		if !strings.Contains(html, "Zq7Edited") {
			t.Fatalf("%s: expected edited value in output: %s", sectionType, html)
		}
		if want := template.HTMLEscapeString(tc.fallback(defaults)); want == "" || !strings.Contains(html, want) {
			t.Fatalf("%s: expected default %q in output: %s", sectionType, want, html)
		}
	}
}

func stringAt(key string) func(map[string]interface{}) string {
	return func(defaults map[string]interface{}) string {
		value, _ := defaults[key].(string)
		return value
	}
}

func firstParagraph(defaults map[string]interface{}) string {
	list, _ := defaults["paragraphs"].([]interface{})
	if len(list) == 0 {
		return ""
	}
	value, _ := list[0].(string)
	return value
}

func visionText(defaults map[string]interface{}) string {
	vision, _ := defaults["vision"].(map[string]interface{})
	value, _ := vision["text"].(string)
	return value
}
