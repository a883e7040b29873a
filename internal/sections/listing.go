package sections

import (
	"fmt"
	"html/template"
	"strings"
)

const featuredProductLimit = 3

type listingDefaults struct {
	heading    string
	subheading string
	highlight  int
}

var listingDefaultsByType = map[string]listingDefaults{
	TypeProducts: {heading: "Featured Products", subheading: "Discover our premium cosmetic product range", highlight: 1},
	TypeClients:  {heading: "Trusted by Leading Brands", subheading: "Join the brands that trust us for their cosmetic manufacturing", highlight: 2},
	TypeReviews:  {heading: "What Our Clients Say", subheading: "Hear from the brands we help bring to market", highlight: 2},
}

// ListingContent backs the data-fed sections. Their items come from
// PageData; content only carries the header.
type ListingContent struct {
	SectionType string
	Heading     string
	Subheading  string
}

func (c ListingContent) Type() string { return c.SectionType }
func (ListingContent) sealed()        {}

func decodeListing(sectionType string, raw map[string]interface{}) ListingContent {
	defaults := listingDefaultsByType[sectionType]
	return ListingContent{
		SectionType: sectionType,
		Heading:     getString(raw, "heading", defaults.heading),
		Subheading:  getString(raw, "subheading", defaults.subheading),
	}
}

func (c ListingContent) Encode() map[string]interface{} {
	return map[string]interface{}{
		"heading":    c.Heading,
		"subheading": c.Subheading,
	}
}

func listingFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		areaField("subheading", "Subheading"),
	}
}

func renderListing(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(ListingContent)
	if !ok {
		content = decodeListing(NormalizeType(block.Section.SectionType), block.Section.Content)
	}

	data := ctx.Data()
	var body strings.Builder
	switch content.SectionType {
	case TypeProducts:
		writeProducts(&body, prefix, data)
	case TypeClients:
		writeClients(&body, prefix, data)
	case TypeReviews:
		writeReviews(&body, prefix, data)
	}
	if body.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	openSection(&sb, prefix, content.SectionType, block, "")
	lead, highlight := SplitHighlight(content.Heading, listingDefaultsByType[content.SectionType].highlight)
	writeHeader(&sb, prefix, lead, highlight, content.Subheading)
	sb.WriteString(body.String())
	closeSection(&sb)
	return sb.String()
}

func writeProducts(sb *strings.Builder, prefix string, data PageData) {
	products := data.Products
	if len(products) > featuredProductLimit {
		products = products[:featuredProductLimit]
	}
	if len(products) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<div class="%s__products grid grid-3">`, prefix))
	for _, product := range products {
		sb.WriteString(fmt.Sprintf(`<article class="%s__product card">`, prefix))
		if img := safeURL(product.CoverImage()); img != "" && img != "#" {
			sb.WriteString(fmt.Sprintf(`<img class="%s__product-image" src="%s" alt="%s" loading="lazy">`,
				prefix, img, template.HTMLEscapeString(product.Name)))
		} else {
			sb.WriteString(fmt.Sprintf(`<div class="%s__product-placeholder">%s</div>`, prefix, featureIcons[IconSparkles]))
		}
		sb.WriteString(fmt.Sprintf(`<p class="%s__product-category">%s</p>`, prefix, template.HTMLEscapeString(product.CategoryName)))
		sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, template.HTMLEscapeString(product.Name)))
		sb.WriteString(fmt.Sprintf(`<p class="line-clamp-2">%s</p>`, template.HTMLEscapeString(product.Description)))
		sb.WriteString(fmt.Sprintf(`<a class="btn btn--outline" href="/products/%s">View Details</a>`, template.HTMLEscapeString(product.ID)))
		sb.WriteString(`</article>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="text-center"><a class="btn btn--primary" href="/products">View All Products</a></div>`)
}

func writeClients(sb *strings.Builder, prefix string, data PageData) {
	if len(data.Clients) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<div class="%s__clients grid grid-6">`, prefix))
	for _, client := range data.Clients {
		sb.WriteString(fmt.Sprintf(`<div class="%s__client">`, prefix))
		if logo := safeURL(client.LogoURL); logo != "" && logo != "#" {
			sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" loading="lazy">`, logo, template.HTMLEscapeString(client.Name)))
		} else {
			sb.WriteString(template.HTMLEscapeString(client.Name))
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`<div class="text-center"><a class="btn btn--outline" href="/clients">View All Clients</a></div>`)
}

func writeReviews(sb *strings.Builder, prefix string, data PageData) {
	if len(data.Reviews) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<div class="%s__reviews grid grid-3">`, prefix))
	for _, review := range data.Reviews {
		sb.WriteString(fmt.Sprintf(`<blockquote class="%s__review card">`, prefix))
		sb.WriteString(fmt.Sprintf(`<div class="%s__review-rating" aria-label="%d out of 5">%s</div>`,
			prefix, clampRating(review.Rating), strings.Repeat("&#9733;", clampRating(review.Rating))))
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, template.HTMLEscapeString(review.ReviewText)))
		sb.WriteString(`<footer>`)
		sb.WriteString(fmt.Sprintf(`<strong>%s</strong>`, template.HTMLEscapeString(review.CustomerName)))
		if byline := reviewByline(review.Position, review.Company); byline != "" {
			sb.WriteString(fmt.Sprintf(`<span>%s</span>`, template.HTMLEscapeString(byline)))
		}
		sb.WriteString(`</footer></blockquote>`)
	}
	sb.WriteString(`</div>`)
}

func clampRating(rating int) int {
	switch {
	case rating < 0:
		return 0
	case rating > 5:
		return 5
	default:
		return rating
	}
}

func reviewByline(position, company string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{position, company} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
