package editor

import (
	"errors"
	"testing"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

func processSection() models.PageSection {
	return models.PageSection{
		ID:          "p1",
		PageName:    "home",
		SectionName: "Process",
		SectionType: sections.TypeProcess,
		Content:     models.JSONMap{},
		Order:       3,
		Visible:     true,
	}
}

func TestSetFieldLeavesInputUntouched(t *testing.T) {
	original := models.PageSection{
		ID:          "1",
		SectionType: sections.TypeFeatures,
		Content: models.JSONMap{
			"features": []interface{}{
				map[string]interface{}{"title": "A", "description": "", "icon": "Star"},
			},
		},
	}

	updated, err := SetField(original, "features.0.icon", "Sparkles")
	if err != nil {
		t.Fatalf("expected field to be set, got error: %v", err)
	}

	got := updated.Content["features"].([]interface{})[0].(map[string]interface{})["icon"]
	if got != "Sparkles" {
		t.Fatalf("expected updated icon, got %v", got)
	}
	before := original.Content["features"].([]interface{})[0].(map[string]interface{})["icon"]
	if before != "Star" {
		t.Fatalf("expected original section to keep its icon, got %v", before)
	}
}

func TestSetFieldMaterialisesDefaults(t *testing.T) {
	section := models.PageSection{ID: "1", SectionType: sections.TypeFeatures, Content: models.JSONMap{}}

	updated, err := SetField(section, "features.1.title", "Fast")
	if err != nil {
		t.Fatalf("expected default list to be editable, got error: %v", err)
	}
	list := updated.Content["features"].([]interface{})
	if len(list) != 3 {
		t.Fatalf("expected the three default features to be stored, got %d", len(list))
	}
	if list[1].(map[string]interface{})["title"] != "Fast" {
		t.Fatalf("expected second feature title to change, got %v", list[1])
	}
	if list[0].(map[string]interface{})["title"] != "Certified Quality" {
		t.Fatalf("expected first feature to keep its default, got %v", list[0])
	}
}

func TestSetFieldNestedGroup(t *testing.T) {
	section := models.PageSection{ID: "1", SectionType: sections.TypeVisionMission, Content: models.JSONMap{}}

	updated, err := SetField(section, "vision.title", "Where we go")
	if err != nil {
		t.Fatalf("expected nested field to be set, got error: %v", err)
	}
	vision := updated.Content["vision"].(map[string]interface{})
	if vision["title"] != "Where we go" {
		t.Fatalf("unexpected vision %v", vision)
	}
	if vision["text"] == "" || vision["text"] == nil {
		t.Fatalf("expected vision text default to be kept, got %v", vision)
	}
}

func TestSetFieldRejectsBadPaths(t *testing.T) {
	section := processSection()
	for _, path := range []string{"", "steps..title", "steps.9.title", "steps.x.title"} {
		if _, err := SetField(section, path, "v"); !errors.Is(err, ErrInvalidPath) {
			t.Fatalf("expected ErrInvalidPath for %q, got %v", path, err)
		}
	}
}

func TestAddItemRenumbersProcess(t *testing.T) {
	updated, err := AddItem(processSection(), "steps")
	if err != nil {
		t.Fatalf("expected item to be added, got error: %v", err)
	}

	steps := updated.Content["steps"].([]interface{})
	if len(steps) != 7 {
		t.Fatalf("expected 7 steps, got %d", len(steps))
	}
	last := steps[6].(map[string]interface{})
	if last["step"] != "07" || last["title"] != "" {
		t.Fatalf("expected blank step 07, got %v", last)
	}
}

func TestRemoveItemRenumbersProcess(t *testing.T) {
	updated, err := RemoveItem(processSection(), "steps", 0)
	if err != nil {
		t.Fatalf("expected item to be removed, got error: %v", err)
	}

	steps := updated.Content["steps"].([]interface{})
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(steps))
	}
	first := steps[0].(map[string]interface{})
	if first["step"] != "01" || first["title"] != "Formulation" {
		t.Fatalf("expected Formulation to move to step 01, got %v", first)
	}
}

func TestRemoveItemOutOfRangeIsNoop(t *testing.T) {
	section := processSection()
	updated, err := RemoveItem(section, "steps", 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := updated.Content["steps"]; ok {
		t.Fatalf("expected untouched section for out-of-range index")
	}
}

func TestAddItemUsesTemplate(t *testing.T) {
	section := models.PageSection{ID: "1", SectionType: sections.TypeProof, Content: models.JSONMap{}}

	updated, err := AddItem(section, "images")
	if err != nil {
		t.Fatalf("expected image to be added, got error: %v", err)
	}
	images := updated.Content["images"].([]interface{})
	if len(images) != 1 {
		t.Fatalf("expected one image, got %d", len(images))
	}
	item := images[0].(map[string]interface{})
	for _, key := range []string{"title", "description", "image_url"} {
		if item[key] != "" {
			t.Fatalf("expected blank %s, got %v", key, item[key])
		}
	}

	if _, err := AddItem(section, "heading"); !errors.Is(err, ErrNotAList) {
		t.Fatalf("expected ErrNotAList for scalar field, got %v", err)
	}
}

func TestRawHolderApply(t *testing.T) {
	holder := NewRawHolder(models.JSONMap{"a": 1.0})

	next, ok := holder.Apply(`{"b": [1, 2]}`)
	if !ok {
		t.Fatalf("expected valid JSON to apply")
	}
	if _, has := next.Content["a"]; has {
		t.Fatalf("expected content to be replaced exactly, got %v", next.Content)
	}

	broken, ok := next.Apply(`{"b": [1, 2`)
	if ok {
		t.Fatalf("expected broken JSON to be ignored")
	}
	if broken.Text != `{"b": [1, 2` {
		t.Fatalf("expected typed text to be kept, got %q", broken.Text)
	}
	if len(broken.Content["b"].([]interface{})) != 2 {
		t.Fatalf("expected last good content to be kept, got %v", broken.Content)
	}

	if _, ok := next.Apply(`[1, 2]`); ok {
		t.Fatalf("expected non-object JSON to be ignored")
	}
}

func TestFormForUnknownType(t *testing.T) {
	entry := newEntry(models.PageSection{
		ID:          "x",
		SectionType: "testimonial_wall",
		Content:     models.JSONMap{"quotes": []interface{}{"hi"}},
	})

	form := FormFor(entry)
	if len(form.Fields) != 1 || form.Fields[0].Kind != sections.KindJSON {
		t.Fatalf("expected a single JSON field, got %+v", form.Fields)
	}
	if form.Raw == "" || form.Raw != form.Fields[0].Text {
		t.Fatalf("expected pretty JSON text, got %q", form.Raw)
	}
}

func TestFormForHeroHidesInactiveBackgrounds(t *testing.T) {
	entry := newEntry(models.PageSection{
		ID:          "h",
		SectionType: sections.TypeHero,
		Content:     models.JSONMap{"background_type": "video"},
	})

	form := FormFor(entry)
	hidden := map[string]bool{}
	for _, field := range form.Fields {
		hidden[field.Key] = field.Hidden
	}
	if !hidden["background_image"] || hidden["background_video"] || !hidden["background_carousel"] {
		t.Fatalf("unexpected visibility of background fields: %v", hidden)
	}
	if len(form.Warnings) == 0 {
		t.Fatalf("expected warnings for missing hero keys")
	}
}

func malformedFeatures() models.PageSection {
	return models.PageSection{
		ID:          "f",
		SectionType: sections.TypeFeatures,
		Content: models.JSONMap{
			"features": []interface{}{"junk", map[string]interface{}{"title": "A"}},
		},
	}
}

func featureTitles(t *testing.T, section models.PageSection) []string {
	t.Helper()
	list, ok := section.Content["features"].([]interface{})
	if !ok {
		t.Fatalf("expected features list, got %T", section.Content["features"])
	}
	titles := make([]string, 0, len(list))
	for _, raw := range list {
		item, ok := raw.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object items only, got %T", raw)
		}
		title, _ := item["title"].(string)
		titles = append(titles, title)
	}
	return titles
}

func TestEditsAddressItemsShownInForm(t *testing.T) {
	section := malformedFeatures()

	form := FormFor(newEntry(section))
	var items []FormItem
	for _, field := range form.Fields {
		if field.Key == "features" {
			items = field.Items
		}
	}
	if len(items) != 1 || items[0].Index != 0 {
		t.Fatalf("expected a single form item at index 0, got %+v", items)
	}

	edited, err := SetField(section, "features.0.title", "EDITED")
	if err != nil {
		t.Fatalf("expected field to be set, got error: %v", err)
	}
	if titles := featureTitles(t, edited); len(titles) != 1 || titles[0] != "EDITED" {
		t.Fatalf("expected the visible item to be edited, got %v", titles)
	}

	removed, err := RemoveItem(section, "features", 0)
	if err != nil {
		t.Fatalf("expected item to be removed, got error: %v", err)
	}
	if titles := featureTitles(t, removed); len(titles) != 0 {
		t.Fatalf("expected the visible item to be removed, got %v", titles)
	}

	added, err := AddItem(section, "features")
	if err != nil {
		t.Fatalf("expected item to be added, got error: %v", err)
	}
	if titles := featureTitles(t, added); len(titles) != 2 || titles[0] != "A" {
		t.Fatalf("expected the blank item after the visible one, got %v", titles)
	}
}
