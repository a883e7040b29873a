package editor

import (
	"strings"

	"ellavera-site/internal/sections"
)

// FormField is a field of the editing contract with its current value.
type FormField struct {
	sections.Field
	Value interface{} `json:"value"`
	// Text is the value as shown in a text control, with lines joined by
	// the field separator.
	Text   string      `json:"text,omitempty"`
	Hidden bool        `json:"hidden,omitempty"`
	Items  []FormItem  `json:"items,omitempty"`
	Group  []FormField `json:"group,omitempty"`
}

// FormItem is one entry of a list field.
type FormItem struct {
	Index  int         `json:"index"`
	Fields []FormField `json:"fields"`
}

// Form describes how the admin editor renders one section.
type Form struct {
	Key         string             `json:"key"`
	SectionType string             `json:"section_type"`
	SectionName string             `json:"section_name"`
	Order       int                `json:"order"`
	Visible     bool               `json:"visible"`
	Persisted   bool               `json:"persisted"`
	Dirty       bool               `json:"dirty"`
	Fields      []FormField        `json:"fields"`
	Raw         string             `json:"raw,omitempty"`
	Warnings    []sections.Warning `json:"warnings,omitempty"`
}

// FormFor builds the form of a staged entry. Values come from the decoded
// content so defaults show wherever the stored content is silent. Sections
// without a typed editor get a single JSON field holding the raw text.
func FormFor(entry Entry) Form {
	section := entry.Section
	form := Form{
		Key:         entry.Key,
		SectionType: section.SectionType,
		SectionName: section.SectionName,
		Order:       section.Order,
		Visible:     section.Visible,
		Persisted:   entry.Persisted(),
		Dirty:       entry.Dirty,
	}

	content := sections.DecodeSection(section)
	if _, unknown := content.(sections.UnknownContent); unknown {
		raw := entry.Raw
		if raw == nil {
			holder := NewRawHolder(section.Content)
			raw = &holder
		}
		form.Raw = raw.Text
		form.Fields = []FormField{{
			Field: sections.FieldsFor(content)[0],
			Value: map[string]interface{}(raw.Content),
			Text:  raw.Text,
		}}
		return form
	}

	values := content.Encode()
	form.Fields = buildFields(sections.FieldsFor(content), values, values)
	form.Warnings = sections.Validate(section.SectionType, section.Content)
	return form
}

func buildFields(fields []sections.Field, values, siblings map[string]interface{}) []FormField {
	out := make([]FormField, 0, len(fields))
	for _, field := range fields {
		value := values[field.Key]
		item := FormField{Field: field, Value: value}

		if field.ShowIf != nil {
			fallback, _ := siblings[field.ShowIf.Key].(string)
			item.Hidden = !field.ShowIf.Matches(siblings, fallback)
		}

		switch field.Kind {
		case sections.KindLines:
			item.Text = joinLines(value, field.Separator)
		case sections.KindList:
			list, _ := value.([]interface{})
			for i, raw := range list {
				obj, _ := raw.(map[string]interface{})
				item.Items = append(item.Items, FormItem{Index: i, Fields: buildFields(field.Fields, obj, obj)})
			}
		case sections.KindGroup:
			obj, _ := value.(map[string]interface{})
			item.Group = buildFields(field.Fields, obj, obj)
		default:
			if str, ok := value.(string); ok {
				item.Text = str
			}
		}
		out = append(out, item)
	}
	return out
}

func joinLines(value interface{}, sep string) string {
	if sep == "" {
		sep = "\n"
	}
	list, _ := value.([]interface{})
	parts := make([]string, 0, len(list))
	for _, raw := range list {
		if str, ok := raw.(string); ok {
			parts = append(parts, str)
		}
	}
	if sep == "," {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, sep)
}

// ParseLines turns the text of a lines field back into its stored list.
func ParseLines(field sections.Field, text string) []interface{} {
	sep := field.Separator
	if sep == "" {
		sep = "\n"
	}
	items := sections.SplitList(text, sep)
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
