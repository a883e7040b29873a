package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

var (
	ErrInvalidPath = errors.New("invalid field path")
	ErrNotAList    = errors.New("field is not a list")
)

// SetField returns a copy of section with the value at path replaced. Paths
// are dot separated and address nested keys and list indices, for example
// "vision.title" or "features.2.icon". The input section is never modified.
func SetField(section models.PageSection, path string, value interface{}) (models.PageSection, error) {
	segments, err := splitPath(path)
	if err != nil {
		return section, err
	}

	next := section.Clone()
	materialize(next, segments[0])

	var container interface{} = map[string]interface{}(next.Content)
	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := container.(type) {
		case map[string]interface{}:
			if last {
				node[segment] = value
				break
			}
			child, ok := node[segment]
			if !ok || !isContainer(child) {
				child = map[string]interface{}{}
				node[segment] = child
			}
			container = child
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return section, fmt.Errorf("%w: %s", ErrInvalidPath, path)
			}
			if last {
				node[index] = value
				break
			}
			child := node[index]
			if !isContainer(child) {
				child = map[string]interface{}{}
				node[index] = child
			}
			container = child
		default:
			return section, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
	}

	return next, nil
}

// AddItem returns a copy of section with the blank item template of the list
// field appended. Process steps are renumbered afterwards.
func AddItem(section models.PageSection, listKey string) (models.PageSection, error) {
	field, ok := sections.FindField(fieldsOf(section), listKey)
	if !ok || field.Kind != sections.KindList {
		return section, fmt.Errorf("%w: %s", ErrNotAList, listKey)
	}

	next := section.Clone()
	materialize(next, listKey)

	list, _ := next.Content[listKey].([]interface{})
	list = append(list, field.ItemTemplate())
	next.Content[listKey] = renumber(next.SectionType, listKey, list)
	return next, nil
}

// RemoveItem returns a copy of section without the list item at index.
// Later items shift down by one. An index outside the list is a no-op.
func RemoveItem(section models.PageSection, listKey string, index int) (models.PageSection, error) {
	field, ok := sections.FindField(fieldsOf(section), listKey)
	if !ok || field.Kind != sections.KindList {
		return section, fmt.Errorf("%w: %s", ErrNotAList, listKey)
	}

	next := section.Clone()
	materialize(next, listKey)

	list, _ := next.Content[listKey].([]interface{})
	if index < 0 || index >= len(list) {
		return section, nil
	}
	trimmed := make([]interface{}, 0, len(list)-1)
	trimmed = append(trimmed, list[:index]...)
	trimmed = append(trimmed, list[index+1:]...)
	next.Content[listKey] = renumber(next.SectionType, listKey, trimmed)
	return next, nil
}

// materialize copies the decoded default of a top-level key into content when
// the stored value is absent or unusable, so edits start from what the form
// displayed.
func materialize(section models.PageSection, key string) {
	if !sections.IsKnownType(section.SectionType) {
		return
	}
	content := section.Content
	field, ok := sections.FindField(fieldsOf(section), key)
	if !ok {
		return
	}

	current, exists := content[key]
	switch field.Kind {
	case sections.KindList:
		if list, ok := current.([]interface{}); ok && allObjects(list) {
			return
		}
	case sections.KindGroup:
		if _, ok := current.(map[string]interface{}); ok {
			return
		}
	default:
		if exists {
			return
		}
	}

	decoded := sections.DecodeSection(section).Encode()
	if value, ok := decoded[key]; ok {
		content[key] = value
	} else if field.Kind == sections.KindList && exists {
		content[key] = []interface{}{}
	}
}

// allObjects reports whether every list item is an object, which keeps stored
// positions aligned with the items the form numbers.
func allObjects(list []interface{}) bool {
	for _, item := range list {
		if _, ok := item.(map[string]interface{}); !ok {
			return false
		}
	}
	return true
}

func renumber(sectionType, listKey string, list []interface{}) []interface{} {
	if sections.NormalizeType(sectionType) != sections.TypeProcess || listKey != "steps" {
		return list
	}
	for i, raw := range list {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		item["step"] = sections.StepLabel(i + 1)
	}
	return list
}

func splitPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

func isContainer(value interface{}) bool {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return true
	default:
		return false
	}
}

// fieldsOf returns the editing contract matching the stored layout of section.
func fieldsOf(section models.PageSection) []sections.Field {
	return sections.FieldsFor(sections.DecodeSection(section))
}
