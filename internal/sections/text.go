package sections

import (
	"fmt"
	"html/template"
	"strings"
)

// Text section layouts.
const (
	LayoutParagraphs = "paragraphs"
	LayoutPillars    = "vision_mission"

	ParagraphSeparator = "\n\n"
)

type Pillar struct {
	Title string
	Text  string
}

// TextContent backs both "text" and "vision_mission" sections. Layout picks
// between a paragraph column and the vision/mission pair.
type TextContent struct {
	SectionType string
	Layout      string
	Heading     string
	Paragraphs  []string
	Vision      Pillar
	Mission     Pillar
}

func (c TextContent) Type() string { return c.SectionType }
func (TextContent) sealed()        {}

func defaultParagraphs() []string {
	return []string{
		"Ellavera Beauty was founded with a singular vision: to empower beauty brands with world-class cosmetic manufacturing services. With years of expertise in the cosmetics industry, we understand the unique challenges brands face in bringing their products to market.",
		"We specialize in custom formulation, private label manufacturing, and complete turnkey solutions. Our state-of-the-art facilities are equipped with the latest technology, allowing us to create products that meet the highest quality standards while maintaining competitive pricing.",
		"From skincare to haircare, body care to fragrances, we have the capability and expertise to manufacture a wide range of cosmetic products. Our commitment to quality, innovation, and customer satisfaction has made us a preferred partner for brands across the globe.",
	}
}

var (
	defaultVision = Pillar{
		Title: "Our Vision",
		Text:  "To be the leading cosmetic manufacturer that enables beauty brands worldwide to create exceptional products that inspire confidence and transform lives.",
	}
	defaultMission = Pillar{
		Title: "Our Mission",
		Text:  "To provide innovative, high-quality cosmetic manufacturing solutions with unparalleled customer service, helping brands bring their vision to life through cutting-edge formulations and sustainable practices.",
	}
)

// textLayout picks the vision/mission layout when either pillar is present,
// or when a vision_mission section carries no paragraphs.
func textLayout(sectionType string, raw map[string]interface{}) string {
	_, hasVision := raw["vision"]
	_, hasMission := raw["mission"]
	if hasVision || hasMission {
		return LayoutPillars
	}
	if _, hasParagraphs := raw["paragraphs"]; hasParagraphs {
		return LayoutParagraphs
	}
	if sectionType == TypeVisionMission {
		return LayoutPillars
	}
	return LayoutParagraphs
}

func decodeText(sectionType string, raw map[string]interface{}) TextContent {
	c := TextContent{
		SectionType: sectionType,
		Layout:      textLayout(sectionType, raw),
	}

	if c.Layout == LayoutPillars {
		c.Heading = getString(raw, "heading", "")
		c.Vision = decodePillar(raw, "vision", defaultVision)
		c.Mission = decodePillar(raw, "mission", defaultMission)
		return c
	}

	c.Heading = getString(raw, "heading", "Our Story")
	if paragraphs, ok := getStringList(raw, "paragraphs", ParagraphSeparator); ok {
		c.Paragraphs = paragraphs
	} else {
		c.Paragraphs = defaultParagraphs()
	}
	return c
}

func decodePillar(raw map[string]interface{}, key string, fallback Pillar) Pillar {
	obj, ok := getObject(raw, key)
	if !ok {
		return fallback
	}
	return Pillar{
		Title: getString(obj, "title", fallback.Title),
		Text:  getString(obj, "text", fallback.Text),
	}
}

func (c TextContent) Encode() map[string]interface{} {
	if c.Layout == LayoutPillars {
		return map[string]interface{}{
			"heading": c.Heading,
			"vision":  map[string]interface{}{"title": c.Vision.Title, "text": c.Vision.Text},
			"mission": map[string]interface{}{"title": c.Mission.Title, "text": c.Mission.Text},
		}
	}
	return map[string]interface{}{
		"heading":    c.Heading,
		"paragraphs": stringsToList(c.Paragraphs),
	}
}

func textFields(layout string) []Field {
	if layout == LayoutPillars {
		pillar := func(key, label string) Field {
			return Field{
				Key:   key,
				Label: label,
				Kind:  KindGroup,
				Fields: []Field{
					textField("title", "Title"),
					areaField("text", "Text"),
				},
			}
		}
		return []Field{
			textField("heading", "Heading"),
			pillar("vision", "Vision"),
			pillar("mission", "Mission"),
		}
	}
	return []Field{
		textField("heading", "Heading"),
		{
			Key:       "paragraphs",
			Label:     "Content (one paragraph per blank line)",
			Kind:      KindLines,
			Separator: ParagraphSeparator,
		},
	}
}

func renderText(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(TextContent)
	if !ok {
		content = decodeText(NormalizeType(block.Section.SectionType), block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, content.SectionType, block, "")
	if content.Heading != "" {
		sb.WriteString(fmt.Sprintf(`<h2 class="%s__text-heading">%s</h2>`, prefix, template.HTMLEscapeString(content.Heading)))
	}

	if content.Layout == LayoutPillars {
		sb.WriteString(fmt.Sprintf(`<div class="%s__pillars grid grid-2">`, prefix))
		for _, item := range []struct {
			kind   string
			pillar Pillar
		}{{"vision", content.Vision}, {"mission", content.Mission}} {
			sb.WriteString(fmt.Sprintf(`<div class="%s__pillar %s__pillar--%s card">`, prefix, prefix, item.kind))
			sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, template.HTMLEscapeString(item.pillar.Title)))
			sb.WriteString(fmt.Sprintf(`<p>%s</p>`, template.HTMLEscapeString(item.pillar.Text)))
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)
	} else {
		sb.WriteString(fmt.Sprintf(`<div class="%s__text">`, prefix))
		for _, paragraph := range content.Paragraphs {
			sb.WriteString(`<p>`)
			sb.WriteString(ctx.SanitizeHTML(paragraph))
			sb.WriteString(`</p>`)
		}
		sb.WriteString(`</div>`)
	}

	closeSection(&sb)
	return sb.String()
}
