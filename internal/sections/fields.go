package sections

// FieldKind selects the form control the editor renders for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindURL      FieldKind = "url"
	KindColor    FieldKind = "color"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindLines    FieldKind = "lines"
	KindList     FieldKind = "list"
	KindGroup    FieldKind = "group"
	KindJSON     FieldKind = "json"
)

// Field is one entry of a section type's editing contract.
type Field struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Kind     FieldKind  `json:"kind"`
	Options  []string   `json:"options,omitempty"`
	Min      *float64   `json:"min,omitempty"`
	Max      *float64   `json:"max,omitempty"`
	Step     float64    `json:"step,omitempty"`
	ReadOnly bool       `json:"read_only,omitempty"`
	Upload   bool       `json:"upload,omitempty"`
	ShowIf   *Condition `json:"show_if,omitempty"`
	Help     string     `json:"help,omitempty"`

	// Separator joins and splits KindLines values in the text control.
	Separator string                 `json:"separator,omitempty"`
	Fields    []Field                `json:"fields,omitempty"`
	Template  map[string]interface{} `json:"template,omitempty"`
}

// Condition hides a field unless a sibling key holds Equals.
type Condition struct {
	Key    string `json:"key"`
	Equals string `json:"equals"`
}

func (c *Condition) Matches(content map[string]interface{}, fallback string) bool {
	if c == nil {
		return true
	}
	return getString(content, c.Key, fallback) == c.Equals
}

// ItemTemplate returns a fresh copy of the blank item appended by list fields.
func (f Field) ItemTemplate() map[string]interface{} {
	out := make(map[string]interface{}, len(f.Template))
	for k, v := range f.Template {
		out[k] = v
	}
	return out
}

// Fields returns the editing contract of a section type with default content.
// Unknown types get a single JSON field.
func Fields(sectionType string) []Field {
	return FieldsFor(Decode(sectionType, nil))
}

// FieldsFor returns the editing contract for decoded content. Text sections
// switch between the paragraph and vision/mission layouts.
func FieldsFor(content Content) []Field {
	switch c := content.(type) {
	case HeroContent:
		return heroFields()
	case FeaturesContent:
		return featuresFields()
	case ServicesContent:
		return servicesFields()
	case ProcessContent:
		return processFields()
	case CTAContent:
		return ctaFields()
	case TextContent:
		return textFields(c.Layout)
	case ProofContent:
		return proofFields()
	case ListingContent:
		return listingFields()
	default:
		return []Field{{Key: "", Label: "Content (JSON)", Kind: KindJSON}}
	}
}

// FindField returns the top-level field with key.
func FindField(fields []Field, key string) (Field, bool) {
	for _, field := range fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

func floatPtr(v float64) *float64 { return &v }

func textField(key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindText}
}

func areaField(key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindTextarea}
}

func urlField(key, label string) Field {
	return Field{Key: key, Label: label, Kind: KindURL}
}
