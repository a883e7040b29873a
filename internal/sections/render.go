package sections

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"ellavera-site/internal/models"
)

// Background classes alternated across non-hero sections.
const (
	ShadeA = "bg-white"
	ShadeB = "bg-gradient-to-b from-cyan-50 to-white"
)

var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\([0-9.,%\s]+\))$`)

type pageContext struct {
	sanitize func(string) string
	data     PageData
}

// NewRenderContext builds a RenderContext from a sanitiser and fetched data.
// A nil sanitiser escapes everything.
func NewRenderContext(sanitize func(string) string, data PageData) RenderContext {
	if sanitize == nil {
		sanitize = template.HTMLEscapeString
	}
	return &pageContext{sanitize: sanitize, data: data}
}

func (c *pageContext) SanitizeHTML(input string) string { return c.sanitize(input) }

func (c *pageContext) Data() PageData { return c.data }

// RenderPage renders sections in public order. Sections must already be
// filtered and sorted with VisibleOrdered; unknown types produce no output.
func RenderPage(reg *Registry, ctx RenderContext, prefix string, list []models.PageSection) string {
	if len(list) == 0 {
		return ""
	}
	if prefix == "" {
		prefix = "page"
	}

	shades := Shades(list)
	var sb strings.Builder
	for i, section := range list {
		renderer, ok := reg.Get(section.SectionType)
		if !ok {
			continue
		}
		block := Block{
			Section: section,
			Content: DecodeSection(section),
			Shade:   shades[i],
		}
		sb.WriteString(renderer(ctx, prefix, block))
	}
	return sb.String()
}

// RenderSection renders a single section regardless of visibility, as the
// editor preview does. The shade defaults to ShadeA for non-hero sections.
func RenderSection(reg *Registry, ctx RenderContext, prefix string, section models.PageSection) string {
	renderer, ok := reg.Get(section.SectionType)
	if !ok {
		return ""
	}
	shade := ShadeA
	if NormalizeType(section.SectionType) == TypeHero {
		shade = ""
	}
	if prefix == "" {
		prefix = "page"
	}
	return renderer(ctx, prefix, Block{Section: section, Content: DecodeSection(section), Shade: shade})
}

func openSection(sb *strings.Builder, prefix, kind string, block Block, extraClass string) {
	classes := []string{fmt.Sprintf("%s__section", prefix), fmt.Sprintf("section-%s", kind)}
	if block.Shade != "" {
		classes = append(classes, block.Shade)
	}
	if extraClass != "" {
		classes = append(classes, extraClass)
	}
	sb.WriteString(`<section class="`)
	sb.WriteString(template.HTMLEscapeString(strings.Join(classes, " ")))
	sb.WriteString(`" data-section-type="`)
	sb.WriteString(template.HTMLEscapeString(kind))
	sb.WriteString(`"`)
	if block.Section.ID != "" {
		sb.WriteString(` data-section-id="`)
		sb.WriteString(template.HTMLEscapeString(block.Section.ID))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(`<div class="container">`)
}

func closeSection(sb *strings.Builder) {
	sb.WriteString(`</div></section>`)
}

// writeHeader writes the centred heading block shared by most sections.
func writeHeader(sb *strings.Builder, prefix, lead, highlight, subheading string) {
	if lead == "" && highlight == "" && subheading == "" {
		return
	}
	sb.WriteString(fmt.Sprintf(`<div class="%s__section-header">`, prefix))
	if lead != "" || highlight != "" {
		sb.WriteString(fmt.Sprintf(`<h2 class="%s__section-title">`, prefix))
		sb.WriteString(template.HTMLEscapeString(lead))
		if highlight != "" {
			if lead != "" {
				sb.WriteString(" ")
			}
			sb.WriteString(`<span class="text-gradient">`)
			sb.WriteString(template.HTMLEscapeString(highlight))
			sb.WriteString(`</span>`)
		}
		sb.WriteString(`</h2>`)
	}
	if subheading != "" {
		sb.WriteString(fmt.Sprintf(`<p class="%s__section-subtitle">`, prefix))
		sb.WriteString(template.HTMLEscapeString(subheading))
		sb.WriteString(`</p>`)
	}
	sb.WriteString(`</div>`)
}

// safeURL escapes a link target, replacing script schemes with "#".
// Media data URLs produced by uploads are kept.
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "javascript:"), strings.HasPrefix(lower, "vbscript:"):
		return "#"
	case strings.HasPrefix(lower, "data:"):
		if !strings.HasPrefix(lower, "data:image/") && !strings.HasPrefix(lower, "data:video/") {
			return "#"
		}
	}
	return template.HTMLEscapeString(trimmed)
}

// safeColor returns value when it is a plain CSS colour, else "".
func safeColor(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || !cssColorPattern.MatchString(value) {
		return ""
	}
	return value
}

func colorStyle(value string) string {
	if color := safeColor(value); color != "" {
		return fmt.Sprintf(` style="color: %s"`, color)
	}
	return ""
}
