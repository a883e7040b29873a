package sections

import (
	"fmt"
	"html/template"
	"strings"
)

// Hero background modes.
const (
	BackgroundImage    = "image"
	BackgroundVideo    = "video"
	BackgroundCarousel = "carousel"

	defaultOverlay = 0.3
)

// HeroContent is the full-width banner opening a page.
type HeroContent struct {
	BadgeText          string
	Title              string
	TitleHighlight     string
	Description        string
	CTAPrimaryText     string
	CTAPrimaryLink     string
	CTASecondaryText   string
	CTASecondaryLink   string
	BackgroundType     string
	BackgroundImage    string
	BackgroundVideo    string
	BackgroundCarousel []string
	BackgroundOverlay  float64
	BadgeColor         string
	TitleColor         string
	DescriptionColor   string
}

func (HeroContent) Type() string { return TypeHero }
func (HeroContent) sealed()      {}

func decodeHero(raw map[string]interface{}) HeroContent {
	c := HeroContent{
		BadgeText:        getString(raw, "badge_text", "Premium Cosmetic Manufacturing"),
		Title:            getString(raw, "title", "Transform Your Beauty Brand with"),
		TitleHighlight:   getString(raw, "title_highlight", "Ellavera Beauty"),
		Description:      getString(raw, "description", "We manufacture premium cosmetic products tailored to your brand vision. From formulation to packaging, we bring your beauty products to life."),
		CTAPrimaryText:   getString(raw, "cta_primary_text", "Explore Products"),
		CTAPrimaryLink:   getString(raw, "cta_primary_link", "/products"),
		CTASecondaryText: getString(raw, "cta_secondary_text", "Get a Quote"),
		CTASecondaryLink: getString(raw, "cta_secondary_link", "/contact"),
		BackgroundType:   BackgroundImage,
		BackgroundImage:  getString(raw, "background_image", ""),
		BackgroundVideo:  getString(raw, "background_video", ""),
		BadgeColor:       getString(raw, "badge_color", ""),
		TitleColor:       getString(raw, "title_color", ""),
		DescriptionColor: getString(raw, "description_color", ""),
	}

	switch mode := strings.ToLower(getString(raw, "background_type", BackgroundImage)); mode {
	case BackgroundImage, BackgroundVideo, BackgroundCarousel:
		c.BackgroundType = mode
	}

	if slides, ok := getStringList(raw, "background_carousel", ","); ok {
		c.BackgroundCarousel = slides
	} else {
		c.BackgroundCarousel = []string{}
	}

	c.BackgroundOverlay = defaultOverlay
	if overlay, ok := getFloat(raw, "background_overlay"); ok {
		c.BackgroundOverlay = clamp01(overlay)
	}

	return c
}

func (c HeroContent) Encode() map[string]interface{} {
	return map[string]interface{}{
		"badge_text":          c.BadgeText,
		"title":               c.Title,
		"title_highlight":     c.TitleHighlight,
		"description":         c.Description,
		"cta_primary_text":    c.CTAPrimaryText,
		"cta_primary_link":    c.CTAPrimaryLink,
		"cta_secondary_text":  c.CTASecondaryText,
		"cta_secondary_link":  c.CTASecondaryLink,
		"background_type":     c.BackgroundType,
		"background_image":    c.BackgroundImage,
		"background_video":    c.BackgroundVideo,
		"background_carousel": stringsToList(c.BackgroundCarousel),
		"background_overlay":  c.BackgroundOverlay,
		"badge_color":         c.BadgeColor,
		"title_color":         c.TitleColor,
		"description_color":   c.DescriptionColor,
	}
}

func heroFields() []Field {
	return []Field{
		textField("badge_text", "Badge Text"),
		textField("title", "Title"),
		textField("title_highlight", "Title Highlight"),
		Field{Key: "description", Label: "Description", Kind: KindTextarea},
		textField("cta_primary_text", "Primary Button Text"),
		textField("cta_primary_link", "Primary Button Link"),
		textField("cta_secondary_text", "Secondary Button Text"),
		textField("cta_secondary_link", "Secondary Button Link"),
		{
			Key:     "background_type",
			Label:   "Background Type",
			Kind:    KindSelect,
			Options: []string{BackgroundImage, BackgroundVideo, BackgroundCarousel},
		},
		{
			Key:    "background_image",
			Label:  "Background Image",
			Kind:   KindURL,
			Upload: true,
			ShowIf: &Condition{Key: "background_type", Equals: BackgroundImage},
			Help:   "Max 5MB. Recommended: 1920x1080px for best quality",
		},
		{
			Key:    "background_video",
			Label:  "Background Video URL (MP4)",
			Kind:   KindURL,
			ShowIf: &Condition{Key: "background_type", Equals: BackgroundVideo},
		},
		{
			Key:       "background_carousel",
			Label:     "Carousel Images (comma-separated URLs)",
			Kind:      KindLines,
			Separator: ",",
			ShowIf:    &Condition{Key: "background_type", Equals: BackgroundCarousel},
		},
		{
			Key:   "background_overlay",
			Label: "Background Overlay Opacity (0-1)",
			Kind:  KindNumber,
			Min:   floatPtr(0),
			Max:   floatPtr(1),
			Step:  0.1,
		},
		{Key: "badge_color", Label: "Badge Colour", Kind: KindColor},
		{Key: "title_color", Label: "Title Colour", Kind: KindColor},
		{Key: "description_color", Label: "Description Colour", Kind: KindColor},
	}
}

func renderHero(ctx RenderContext, prefix string, block Block) string {
	hero, ok := block.Content.(HeroContent)
	if !ok {
		hero = decodeHero(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeHero, block, fmt.Sprintf("%s__hero", prefix))

	writeHeroBackground(&sb, prefix, hero)

	sb.WriteString(fmt.Sprintf(`<div class="%s__hero-content">`, prefix))
	sb.WriteString(fmt.Sprintf(`<span class="%s__hero-badge"%s>`, prefix, colorStyle(hero.BadgeColor)))
	sb.WriteString(template.HTMLEscapeString(hero.BadgeText))
	sb.WriteString(`</span>`)

	sb.WriteString(fmt.Sprintf(`<h1 class="%s__hero-title"%s>`, prefix, colorStyle(hero.TitleColor)))
	sb.WriteString(template.HTMLEscapeString(hero.Title))
	sb.WriteString(fmt.Sprintf(`<span class="%s__hero-highlight text-gradient">`, prefix))
	sb.WriteString(template.HTMLEscapeString(hero.TitleHighlight))
	sb.WriteString(`</span></h1>`)

	sb.WriteString(fmt.Sprintf(`<p class="%s__hero-description"%s>`, prefix, colorStyle(hero.DescriptionColor)))
	sb.WriteString(template.HTMLEscapeString(hero.Description))
	sb.WriteString(`</p>`)

	sb.WriteString(fmt.Sprintf(`<div class="%s__hero-actions">`, prefix))
	sb.WriteString(fmt.Sprintf(`<a class="btn btn--primary" href="%s">%s</a>`,
		safeURL(hero.CTAPrimaryLink), template.HTMLEscapeString(hero.CTAPrimaryText)))
	sb.WriteString(fmt.Sprintf(`<a class="btn btn--outline" href="%s">%s</a>`,
		safeURL(hero.CTASecondaryLink), template.HTMLEscapeString(hero.CTASecondaryText)))
	sb.WriteString(`</div></div>`)

	closeSection(&sb)
	return sb.String()
}

func writeHeroBackground(sb *strings.Builder, prefix string, hero HeroContent) {
	switch hero.BackgroundType {
	case BackgroundVideo:
		if src := safeURL(hero.BackgroundVideo); src != "" && src != "#" {
			sb.WriteString(fmt.Sprintf(`<video class="%s__hero-video" src="%s" autoplay muted loop playsinline></video>`, prefix, src))
		}
	case BackgroundCarousel:
		if len(hero.BackgroundCarousel) > 0 {
			sb.WriteString(fmt.Sprintf(`<div class="%s__hero-carousel" data-carousel>`, prefix))
			for i, slide := range hero.BackgroundCarousel {
				active := ""
				if i == 0 {
					active = " is-active"
				}
				sb.WriteString(fmt.Sprintf(`<div class="%s__hero-slide%s" style="background-image: url(&#34;%s&#34;)"></div>`,
					prefix, active, cssURL(slide)))
			}
			sb.WriteString(`</div>`)
		}
	default:
		if hero.BackgroundImage != "" {
			sb.WriteString(fmt.Sprintf(`<div class="%s__hero-image" style="background-image: url(&#34;%s&#34;)"></div>`,
				prefix, cssURL(hero.BackgroundImage)))
		}
	}

	sb.WriteString(fmt.Sprintf(`<div class="%s__hero-overlay" style="opacity: %.2f"></div>`, prefix, hero.BackgroundOverlay))
}

// cssURL prepares a URL for a quoted CSS url() inside a style attribute.
func cssURL(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '\\', '(', ')', '\n', '\r', '<', '>':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	escaped := safeURL(cleaned)
	if escaped == "#" {
		return ""
	}
	return escaped
}
