package sections

import (
	"strings"
	"testing"

	"ellavera-site/internal/models"
)

func section(id, sectionType string, order int, visible bool) models.PageSection {
	return models.PageSection{
		ID:          id,
		PageName:    "home",
		SectionName: sectionType,
		SectionType: sectionType,
		Content:     models.JSONMap{},
		Order:       order,
		Visible:     visible,
	}
}

func ids(list []models.PageSection) string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return strings.Join(out, ",")
}

func TestVisibleOrderedSortsAndFilters(t *testing.T) {
	list := []models.PageSection{
		section("a", TypeCTA, 2, true),
		section("b", TypeHero, 0, true),
		section("c", TypeFeatures, 1, true),
		section("d", TypeServices, 1, false),
	}

	ordered := VisibleOrdered(list)
	if got := ids(ordered); got != "b,c,a" {
		t.Fatalf("expected order b,c,a, got %s", got)
	}
	if got := ids(VisibleOrdered(ordered)); got != "b,c,a" {
		t.Fatalf("expected applying twice to be stable, got %s", got)
	}
	if got := ids(list); got != "a,b,c,d" {
		t.Fatalf("expected input to be left untouched, got %s", got)
	}
}

func TestSortByOrderKeepsTiesAndGaps(t *testing.T) {
	list := []models.PageSection{
		section("x", TypeCTA, 10, true),
		section("y", TypeText, 3, true),
		section("z", TypeProof, 3, true),
	}
	if got := ids(SortByOrder(list)); got != "y,z,x" {
		t.Fatalf("expected y,z,x, got %s", got)
	}
}

func TestShadesSkipHero(t *testing.T) {
	list := []models.PageSection{
		section("1", TypeHero, 0, true),
		section("2", TypeFeatures, 1, true),
		section("3", "mystery", 2, true),
		section("4", TypeCTA, 3, true),
	}

	shades := Shades(list)
	want := []string{"", ShadeA, ShadeB, ShadeA}
	for i := range want {
		if shades[i] != want[i] {
			t.Fatalf("expected shade %q at %d, got %q", want[i], i, shades[i])
		}
	}
}

func TestNextOrderAndFindByType(t *testing.T) {
	list := []models.PageSection{
		section("1", TypeHero, 4, true),
		section("2", TypeProof, 9, false),
	}
	if got := NextOrder(list); got != 10 {
		t.Fatalf("expected next order 10, got %d", got)
	}
	if got := NextOrder(nil); got != 1 {
		t.Fatalf("expected next order 1 for empty page, got %d", got)
	}
	found, ok := FindByType(list, " Proof_Certifications ")
	if !ok || found.ID != "2" {
		t.Fatalf("expected to find proof section, got %+v", found)
	}
}

func TestRenderPageHeroDefaults(t *testing.T) {
	reg := DefaultRegistry()
	ctx := NewRenderContext(nil, PageData{})

	html := RenderPage(reg, ctx, "page", VisibleOrdered([]models.PageSection{section("h", TypeHero, 0, true)}))
	if !strings.Contains(html, "Transform Your Beauty Brand with") {
		t.Fatalf("expected default title in output: %s", html)
	}
	if !strings.Contains(html, `<span class="page__hero-highlight text-gradient">Ellavera Beauty</span>`) {
		t.Fatalf("expected default highlight in output: %s", html)
	}
	if !strings.Contains(html, `opacity: 0.30`) {
		t.Fatalf("expected default overlay in output: %s", html)
	}
	if strings.Contains(html, ShadeA) {
		t.Fatalf("expected hero to carry no shade class: %s", html)
	}
}

func TestRenderPageSkipsUnknownTypes(t *testing.T) {
	reg := DefaultRegistry()
	ctx := NewRenderContext(nil, PageData{})
	list := VisibleOrdered([]models.PageSection{
		section("1", "mystery", 0, true),
		section("2", TypeCTA, 1, true),
	})

	html := RenderPage(reg, ctx, "page", list)
	if strings.Contains(html, "mystery") {
		t.Fatalf("expected unknown section to be skipped: %s", html)
	}
	if strings.Count(html, "<section") != 1 {
		t.Fatalf("expected a single rendered section: %s", html)
	}
	if !strings.Contains(html, ShadeB) {
		t.Fatalf("expected unknown section to advance the shade alternation: %s", html)
	}
}

func TestRenderPageEscapesContent(t *testing.T) {
	reg := DefaultRegistry()
	ctx := NewRenderContext(nil, PageData{})
	cta := section("1", TypeCTA, 0, true)
	cta.Content = models.JSONMap{
		"heading":     "<script>alert(1)</script>",
		"button_link": "javascript:alert(1)",
	}

	html := RenderPage(reg, ctx, "page", []models.PageSection{cta})
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected heading to be escaped: %s", html)
	}
	if !strings.Contains(html, `href="#"`) {
		t.Fatalf("expected script link to be neutralised: %s", html)
	}
}

func TestRenderTextUsesSanitizer(t *testing.T) {
	reg := DefaultRegistry()
	sanitize := func(in string) string { return strings.ReplaceAll(in, "<b>", "[b]") }
	ctx := NewRenderContext(sanitize, PageData{})
	text := section("1", TypeText, 0, true)
	text.Content = models.JSONMap{"paragraphs": []interface{}{"<b>bold"}}

	html := RenderSection(reg, ctx, "page", text)
	if !strings.Contains(html, "<p>[b]bold</p>") {
		t.Fatalf("expected paragraphs to pass through the sanitiser: %s", html)
	}
	if !strings.Contains(html, "Our Story") {
		t.Fatalf("expected default heading: %s", html)
	}
}

func TestRenderProcessHeading(t *testing.T) {
	reg := DefaultRegistry()
	ctx := NewRenderContext(nil, PageData{})
	html := RenderSection(reg, ctx, "page", section("1", TypeProcess, 0, true))

	if !strings.Contains(html, `Our <span class="text-gradient">Process</span>`) {
		t.Fatalf("expected split process heading: %s", html)
	}
	if strings.Count(html, "page__step-number") != 6 {
		t.Fatalf("expected six default steps: %s", html)
	}
}

func TestRenderListingNeedsData(t *testing.T) {
	reg := DefaultRegistry()
	empty := NewRenderContext(nil, PageData{})
	if html := RenderSection(reg, empty, "page", section("1", TypeProducts, 0, true)); html != "" {
		t.Fatalf("expected no output without products, got %s", html)
	}

	products := make([]models.Product, 5)
	for i := range products {
		products[i] = models.Product{ID: string(rune('a' + i)), Name: "Serum"}
	}
	ctx := NewRenderContext(nil, PageData{Products: products})
	html := RenderSection(reg, ctx, "page", section("1", TypeProducts, 0, true))
	if strings.Count(html, "page__product card") != 3 {
		t.Fatalf("expected three featured products: %s", html)
	}
}

func TestRegistryMetadata(t *testing.T) {
	reg := DefaultRegistry()
	list := reg.ListMetadata()
	if len(list) != len(KnownTypes()) {
		t.Fatalf("expected %d registered types, got %d", len(KnownTypes()), len(list))
	}

	meta, ok := reg.GetMetadata(" HERO ")
	if !ok {
		t.Fatalf("expected hero metadata")
	}
	if len(meta.Fields) == 0 || len(meta.Defaults) == 0 {
		t.Fatalf("expected hero metadata to carry fields and defaults")
	}

	if err := reg.Register(&SectionDescriptor{Metadata: SectionMetadata{Type: "x"}}); err == nil {
		t.Fatalf("expected error for descriptor without renderer")
	}
}
