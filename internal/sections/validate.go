package sections

import (
	"fmt"
)

// Warning reports a content problem that rendering papers over with a default.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Validate checks content against the editing contract of its type. It never
// rejects: every problem it reports is already handled by a render default.
// Unknown types carry no contract and yield no warnings.
func Validate(sectionType string, content map[string]interface{}) []Warning {
	if !IsKnownType(sectionType) {
		return nil
	}
	if content == nil {
		content = map[string]interface{}{}
	}

	var warnings []Warning
	for _, field := range FieldsFor(Decode(sectionType, content)) {
		warnings = append(warnings, validateField(field.Key, field, content)...)
	}
	return warnings
}

func validateField(path string, field Field, container map[string]interface{}) []Warning {
	value, ok := container[field.Key]
	if !ok {
		return []Warning{{Field: path, Message: "missing, default used"}}
	}

	switch field.Kind {
	case KindText, KindTextarea, KindURL:
		if _, ok := scalarString(value); !ok {
			return []Warning{{Field: path, Message: "expected text, default used"}}
		}
	case KindColor:
		str, ok := value.(string)
		if !ok {
			return []Warning{{Field: path, Message: "expected a colour string, ignored"}}
		}
		if str != "" && safeColor(str) == "" {
			return []Warning{{Field: path, Message: fmt.Sprintf("%q is not a CSS colour, ignored", str)}}
		}
	case KindNumber:
		number, ok := getFloat(container, field.Key)
		if !ok {
			return []Warning{{Field: path, Message: "expected a number, default used"}}
		}
		if (field.Min != nil && number < *field.Min) || (field.Max != nil && number > *field.Max) {
			return []Warning{{Field: path, Message: fmt.Sprintf("%v is out of range, clamped", number)}}
		}
	case KindSelect:
		str, _ := value.(string)
		for _, option := range field.Options {
			if option == str {
				return nil
			}
		}
		return []Warning{{Field: path, Message: fmt.Sprintf("unsupported value %v, default used", value)}}
	case KindLines:
		switch list := value.(type) {
		case string:
		case []interface{}:
			for i, item := range list {
				if _, ok := scalarString(item); !ok {
					return []Warning{{Field: fmt.Sprintf("%s.%d", path, i), Message: "expected text, item skipped"}}
				}
			}
		default:
			return []Warning{{Field: path, Message: "expected a list of text, default used"}}
		}
	case KindList:
		list, ok := value.([]interface{})
		if !ok {
			return []Warning{{Field: path, Message: "expected a list, default used"}}
		}
		var warnings []Warning
		for i, raw := range list {
			itemPath := fmt.Sprintf("%s.%d", path, i)
			item, ok := asObject(raw)
			if !ok {
				warnings = append(warnings, Warning{Field: itemPath, Message: "expected an object, item skipped"})
				continue
			}
			for _, sub := range field.Fields {
				warnings = append(warnings, validateField(itemPath+"."+sub.Key, sub, item)...)
			}
		}
		return warnings
	case KindGroup:
		obj, ok := asObject(value)
		if !ok {
			return []Warning{{Field: path, Message: "expected an object, default used"}}
		}
		var warnings []Warning
		for _, sub := range field.Fields {
			warnings = append(warnings, validateField(path+"."+sub.Key, sub, obj)...)
		}
		return warnings
	}
	return nil
}
