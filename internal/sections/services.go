package sections

import (
	"fmt"
	"html/template"
	"strings"
)

type ServiceItem struct {
	Name        string
	Description string
}

// ServicesContent lists the manufacturing services offered.
type ServicesContent struct {
	Heading    string
	Subheading string
	Services   []ServiceItem
}

func (ServicesContent) Type() string { return TypeServices }
func (ServicesContent) sealed()      {}

func defaultServiceItems() []ServiceItem {
	return []ServiceItem{
		{Name: "Skincare", Description: "Premium skincare products manufactured to perfection"},
		{Name: "Body Care", Description: "Premium body care products manufactured to perfection"},
		{Name: "Hair Care", Description: "Premium hair care products manufactured to perfection"},
		{Name: "Fragrance", Description: "Premium fragrance products manufactured to perfection"},
	}
}

func decodeServices(raw map[string]interface{}) ServicesContent {
	c := ServicesContent{
		Heading:    getString(raw, "heading", "Our Cosmetic Manufacturing Services"),
		Subheading: getString(raw, "subheading", "Comprehensive solutions for all your cosmetic manufacturing needs"),
	}

	items, ok := getObjectList(raw, "services")
	if !ok {
		c.Services = defaultServiceItems()
		return c
	}
	c.Services = make([]ServiceItem, 0, len(items))
	for _, item := range items {
		c.Services = append(c.Services, ServiceItem{
			Name:        getString(item, "name", ""),
			Description: getString(item, "description", ""),
		})
	}
	return c
}

func (c ServicesContent) Encode() map[string]interface{} {
	items := make([]interface{}, len(c.Services))
	for i, s := range c.Services {
		items[i] = map[string]interface{}{
			"name":        s.Name,
			"description": s.Description,
		}
	}
	return map[string]interface{}{
		"heading":    c.Heading,
		"subheading": c.Subheading,
		"services":   items,
	}
}

func servicesFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		areaField("subheading", "Subheading"),
		{
			Key:   "services",
			Label: "Services",
			Kind:  KindList,
			Fields: []Field{
				textField("name", "Service Name"),
				areaField("description", "Description"),
			},
			Template: map[string]interface{}{"name": "", "description": ""},
		},
	}
}

func renderServices(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(ServicesContent)
	if !ok {
		content = decodeServices(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeServices, block, "")
	lead, highlight := SplitHighlight(content.Heading, 1)
	writeHeader(&sb, prefix, lead, highlight, content.Subheading)

	sb.WriteString(fmt.Sprintf(`<div class="%s__services grid grid-4">`, prefix))
	for _, service := range content.Services {
		sb.WriteString(fmt.Sprintf(`<div class="%s__service card">`, prefix))
		sb.WriteString(fmt.Sprintf(`<h3 class="%s__service-name">%s</h3>`, prefix, template.HTMLEscapeString(service.Name)))
		sb.WriteString(fmt.Sprintf(`<p class="%s__service-text">%s</p>`, prefix, template.HTMLEscapeString(service.Description)))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	closeSection(&sb)
	return sb.String()
}
