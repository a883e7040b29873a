package sections

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

type ProcessStep struct {
	Step        string
	Title       string
	Description string
}

// ProcessContent is the numbered production timeline.
type ProcessContent struct {
	Heading    string
	Subheading string
	Steps      []ProcessStep
}

func (ProcessContent) Type() string { return TypeProcess }
func (ProcessContent) sealed()      {}

func defaultProcessSteps() []ProcessStep {
	return []ProcessStep{
		{Step: "01", Title: "Consultation", Description: "Understanding your brand vision and requirements"},
		{Step: "02", Title: "Formulation", Description: "Creating custom formulas tailored to your needs"},
		{Step: "03", Title: "Testing", Description: "Rigorous quality control and safety testing"},
		{Step: "04", Title: "Production", Description: "Manufacturing with state-of-the-art equipment"},
		{Step: "05", Title: "Packaging", Description: "Premium packaging design and execution"},
		{Step: "06", Title: "Delivery", Description: "Efficient distribution and logistics support"},
	}
}

func decodeProcess(raw map[string]interface{}) ProcessContent {
	c := ProcessContent{
		Heading:    getString(raw, "heading", "Our Process"),
		Subheading: getString(raw, "subheading", "A streamlined approach from concept to final product"),
	}

	items, ok := getObjectList(raw, "steps")
	if !ok {
		c.Steps = defaultProcessSteps()
		return c
	}
	c.Steps = make([]ProcessStep, 0, len(items))
	for i, item := range items {
		c.Steps = append(c.Steps, ProcessStep{
			Step:        stepValue(item, i+1),
			Title:       getString(item, "title", ""),
			Description: getString(item, "description", ""),
		})
	}
	return c
}

// stepValue keeps string labels as entered and pads whole numbers; a missing
// label falls back to the item position.
func stepValue(item map[string]interface{}, position int) string {
	if n, ok := item["step"].(float64); ok && n == math.Trunc(n) && n >= 0 {
		return StepLabel(int(n))
	}
	return getString(item, "step", StepLabel(position))
}

func (c ProcessContent) Encode() map[string]interface{} {
	items := make([]interface{}, len(c.Steps))
	for i, s := range c.Steps {
		items[i] = map[string]interface{}{
			"step":        s.Step,
			"title":       s.Title,
			"description": s.Description,
		}
	}
	return map[string]interface{}{
		"heading":    c.Heading,
		"subheading": c.Subheading,
		"steps":      items,
	}
}

func processFields() []Field {
	return []Field{
		textField("heading", "Heading"),
		areaField("subheading", "Subheading"),
		{
			Key:   "steps",
			Label: "Process Steps",
			Kind:  KindList,
			Fields: []Field{
				{Key: "step", Label: "Step", Kind: KindText, ReadOnly: true},
				textField("title", "Step Title"),
				areaField("description", "Description"),
			},
			Template: map[string]interface{}{"step": "01", "title": "", "description": ""},
		},
	}
}

// ProcessHeadingTail strips the leading "Our " that the renderer prints itself.
func ProcessHeadingTail(heading string) string {
	tail := strings.Replace(heading, "Our ", "", 1)
	if strings.TrimSpace(tail) == "" {
		return "Process"
	}
	return tail
}

func renderProcess(ctx RenderContext, prefix string, block Block) string {
	content, ok := block.Content.(ProcessContent)
	if !ok {
		content = decodeProcess(block.Section.Content)
	}

	var sb strings.Builder
	openSection(&sb, prefix, TypeProcess, block, "")
	writeHeader(&sb, prefix, "Our", ProcessHeadingTail(content.Heading), content.Subheading)

	sb.WriteString(fmt.Sprintf(`<ol class="%s__timeline">`, prefix))
	for i, step := range content.Steps {
		side := "left"
		if i%2 == 1 {
			side = "right"
		}
		sb.WriteString(fmt.Sprintf(`<li class="%s__step %s__step--%s">`, prefix, prefix, side))
		sb.WriteString(fmt.Sprintf(`<span class="%s__step-number">%s</span>`, prefix, template.HTMLEscapeString(step.Step)))
		sb.WriteString(fmt.Sprintf(`<div class="%s__step-body"><h3>%s</h3><p>%s</p></div>`,
			prefix, template.HTMLEscapeString(step.Title), template.HTMLEscapeString(step.Description)))
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ol>`)

	closeSection(&sb)
	return sb.String()
}
