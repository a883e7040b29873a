package sections

import (
	"fmt"
	"html/template"
	"strings"
)

type Certificate struct {
	Title       string
	Description string
	ImageURL    string
}

// ProofContent is the gallery of certification documents.
type ProofContent struct {
	Heading    string
	Subheading string
	Images     []Certificate
}

func (ProofContent) Type() string { return TypeProof }
func (ProofContent) sealed()      {}

func decodeProof(raw map[string]interface{}) ProofContent {
	c := ProofContent{
		Heading:    getString(raw, "heading", "Proof of Certifications"),
		Subheading: getString(raw, "subheading", "Our official certification documents"),
		Images:     []Certificate{},
	}

	items, ok := getObjectList(raw, "images")
	if !ok {
		return c
	}
	for _, item := range items {
		c.Images = append(c.Images, Certificate{
			Title:       getString(item, "title", ""),
			Description: getString(item, "description", ""),
			ImageURL:    getString(item, "image_url", ""),
		})
	}
	return c
}

func (c ProofContent) Encode() map[string]interface{} {
	items := make([]interface{}, len(c.Images))
	for i, cert := range c.Images {
		items[i] = map[string]interface{}{
			"title":       cert.Title,
			"description": cert.Description,
			"image_url":   cert.ImageURL,
		}
	}
	return map[string]interface{}{
		"heading":    c.Heading,
		"subheading": c.Subheading,
		"images":     items,
	}
}

func proofFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		textField("subheading", "Subheading"),
		{
			Key:   "images",
			Label: "Certificates",
			Kind:  KindList,
			Fields: []Field{
				textField("title", "Certificate Title"),
				areaField("description", "Description"),
				{Key: "image_url", Label: "Certificate Image", Kind: KindURL, Upload: true},
			},
			Template: map[string]interface{}{"title": "", "description": "", "image_url": ""},
		},
	}
}

func renderProof(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(ProofContent)
	if !ok {
		content = decodeProof(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeProof, block, "")
	writeHeader(&sb, prefix, content.Heading, "", content.Subheading)

	sb.WriteString(fmt.Sprintf(`<div class="%s__certificates grid grid-3">`, prefix))
	for _, cert := range content.Images {
		sb.WriteString(fmt.Sprintf(`<figure class="%s__certificate card">`, prefix))
		if src := safeURL(cert.ImageURL); src != "" && src != "#" {
			sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" loading="lazy">`, src, template.HTMLEscapeString(cert.Title)))
		}
		sb.WriteString(fmt.Sprintf(`<figcaption><h3>%s</h3><p>%s</p></figcaption>`,
			template.HTMLEscapeString(cert.Title), template.HTMLEscapeString(cert.Description)))
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)

	closeSection(&sb)
	return sb.String()
}
