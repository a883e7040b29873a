package sections

import (
	"fmt"
	"html/template"
	"strings"
)

// CTAContent is the closing call-to-action banner.
type CTAContent struct {
	Heading     string
	Description string
	ButtonText  string
	ButtonLink  string
}

func (CTAContent) Type() string { return TypeCTA }
func (CTAContent) sealed()      {}

func decodeCTA(raw map[string]interface{}) CTAContent {
	return CTAContent{
		Heading:     getString(raw, "heading", "Ready to Launch Your Beauty Brand?"),
		Description: getString(raw, "description", "Let's discuss how we can bring your cosmetic product vision to life"),
		ButtonText:  getString(raw, "button_text", "Contact Us Today"),
		ButtonLink:  getString(raw, "button_link", "/contact"),
	}
}

func (c CTAContent) Encode() map[string]interface{} {
	return map[string]interface{}{
		"heading":     c.Heading,
		"description": c.Description,
		"button_text": c.ButtonText,
		"button_link": c.ButtonLink,
	}
}

func ctaFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		areaField("description", "Description"),
		textField("button_text", "Button Text"),
		textField("button_link", "Button Link"),
	}
}

func renderCTA(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(CTAContent)
	if !ok {
		content = decodeCTA(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeCTA, block, fmt.Sprintf("%s__cta", prefix))
	sb.WriteString(fmt.Sprintf(`<h2 class="%s__cta-title">%s</h2>`, prefix, template.HTMLEscapeString(content.Heading)))
	sb.WriteString(fmt.Sprintf(`<p class="%s__cta-text">%s</p>`, prefix, template.HTMLEscapeString(content.Description)))
	sb.WriteString(fmt.Sprintf(`<a class="btn btn--light" href="%s">%s</a>`,
		safeURL(content.ButtonLink), template.HTMLEscapeString(content.ButtonText)))
	closeSection(&sb)
	return sb.String()
}
