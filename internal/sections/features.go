package sections

import (
	"fmt"
	"html/template"
	"strings"
)

// Feature icons; anything else renders as IconCheckCircle.
const (
	IconCheckCircle = "CheckCircle"
	IconSparkles    = "Sparkles"
	IconStar        = "Star"
)

var featureIcons = map[string]string{
	IconCheckCircle: "&#10003;",
	IconSparkles:    "&#10022;",
	IconStar:        "&#9733;",
}

type Feature struct {
	Title       string
	Description string
	Icon        string
}

// FeaturesContent is a grid of selling points.
type FeaturesContent struct {
	Heading    string
	Subheading string
	Features   []Feature
}

func (FeaturesContent) Type() string { return TypeFeatures }
func (FeaturesContent) sealed()      {}

func defaultFeatures() []Feature {
	return []Feature{
		{Title: "Certified Quality", Description: "BPOM & Halal certified manufacturing with international quality standards", Icon: IconCheckCircle},
		{Title: "Custom Formulations", Description: "Tailored formulas designed specifically for your brand and target market", Icon: IconSparkles},
		{Title: "End-to-End Service", Description: "Complete support from formulation to packaging and distribution", Icon: IconStar},
	}
}

func decodeFeatures(raw map[string]interface{}) FeaturesContent {
	c := FeaturesContent{
		Heading:    getString(raw, "heading", "Why Choose Ellavera Beauty"),
		Subheading: getString(raw, "subheading", "We combine expertise, quality, and innovation to create exceptional cosmetic products"),
	}

	items, ok := getObjectList(raw, "features")
	if !ok {
		c.Features = defaultFeatures()
		return c
	}
	c.Features = make([]Feature, 0, len(items))
	for _, item := range items {
		c.Features = append(c.Features, Feature{
			Title:       getString(item, "title", ""),
			Description: getString(item, "description", ""),
			Icon:        normalizeIcon(getString(item, "icon", IconCheckCircle)),
		})
	}
	return c
}

func normalizeIcon(icon string) string {
	if _, ok := featureIcons[icon]; ok {
		return icon
	}
	return IconCheckCircle
}

func (c FeaturesContent) Encode() map[string]interface{} {
	items := make([]interface{}, len(c.Features))
	for i, f := range c.Features {
		items[i] = map[string]interface{}{
			"title":       f.Title,
			"description": f.Description,
			"icon":        f.Icon,
		}
	}
	return map[string]interface{}{
		"heading":    c.Heading,
		"subheading": c.Subheading,
		"features":   items,
	}
}

func featuresFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		areaField("subheading", "Subheading"),
		{
			Key:   "features",
			Label: "Features",
			Kind:  KindList,
			Fields: []Field{
				textField("title", "Title"),
				areaField("description", "Description"),
				{Key: "icon", Label: "Icon", Kind: KindSelect, Options: []string{IconCheckCircle, IconSparkles, IconStar}},
			},
			Template: map[string]interface{}{"title": "", "description": "", "icon": IconCheckCircle},
		},
	}
}

func renderFeatures(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(FeaturesContent)
	if !ok {
		content = decodeFeatures(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeFeatures, block, "")
	lead, highlight := SplitHighlight(content.Heading, 2)
	writeHeader(&sb, prefix, lead, highlight, content.Subheading)

	sb.WriteString(fmt.Sprintf(`<div class="%s__features grid grid-3">`, prefix))
	for _, feature := range content.Features {
		sb.WriteString(fmt.Sprintf(`<div class="%s__feature card">`, prefix))
		sb.WriteString(fmt.Sprintf(`<div class="%s__feature-icon" data-icon="%s">%s</div>`,
			prefix, template.HTMLEscapeString(feature.Icon), featureIcons[normalizeIcon(feature.Icon)]))
		sb.WriteString(fmt.Sprintf(`<h3 class="%s__feature-title">%s</h3>`, prefix, template.HTMLEscapeString(feature.Title)))
		sb.WriteString(fmt.Sprintf(`<p class="%s__feature-text">%s</p>`, prefix, template.HTMLEscapeString(feature.Description)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	closeSection(&sb)
	return sb.String()
}
