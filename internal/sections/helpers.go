package sections

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeType lower-cases and trims a section type tag.
func NormalizeType(sectionType string) string {
	return strings.TrimSpace(strings.ToLower(sectionType))
}

// getString reads key as a string. Absent, blank and non-scalar values yield
// the fallback; numbers and booleans are rendered as text.
func getString(content map[string]interface{}, key, fallback string) string {
	if content == nil {
		return fallback
	}
	value, ok := content[key]
	if !ok {
		return fallback
	}
	str, ok := scalarString(value)
	if !ok || strings.TrimSpace(str) == "" {
		return fallback
	}
	return str
}

func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// getFloat reads a numeric value, accepting numeric strings. The second
// result reports whether a usable number was found.
func getFloat(content map[string]interface{}, key string) (float64, bool) {
	if content == nil {
		return 0, false
	}
	switch v := content[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// getObject returns the nested mapping stored under key.
func getObject(content map[string]interface{}, key string) (map[string]interface{}, bool) {
	if content == nil {
		return nil, false
	}
	obj, ok := asObject(content[key])
	return obj, ok
}

func asObject(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

// getObjectList returns the object items of a list value. Non-object items are
// dropped. ok is false when the key is absent or not a list.
func getObjectList(content map[string]interface{}, key string) ([]map[string]interface{}, bool) {
	if content == nil {
		return nil, false
	}
	switch list := content[key].(type) {
	case []interface{}:
		items := make([]map[string]interface{}, 0, len(list))
		for _, raw := range list {
			if obj, ok := asObject(raw); ok {
				items = append(items, obj)
			}
		}
		return items, true
	case []map[string]interface{}:
		return list, true
	default:
		return nil, false
	}
}

// getStringList returns the string items of a list value. A bare string is
// split on sep so hand-entered content still renders.
func getStringList(content map[string]interface{}, key, sep string) ([]string, bool) {
	if content == nil {
		return nil, false
	}
	switch list := content[key].(type) {
	case []interface{}:
		items := make([]string, 0, len(list))
		for _, raw := range list {
			if str, ok := scalarString(raw); ok && strings.TrimSpace(str) != "" {
				items = append(items, str)
			}
		}
		return items, true
	case []string:
		return append([]string(nil), list...), true
	case string:
		if sep == "" {
			return nil, false
		}
		return SplitList(list, sep), true
	default:
		return nil, false
	}
}

// SplitList splits raw on sep, trimming items and dropping blanks.
func SplitList(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func stringsToList(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func parseBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(strings.ToLower(v))
		if trimmed == "" {
			return fallback
		}
		switch trimmed {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		default:
			return fallback
		}
	default:
		return fallback
	}
}

// SplitHighlight splits heading so its last n words can be emphasised.
func SplitHighlight(heading string, n int) (lead, highlight string) {
	words := strings.Fields(heading)
	if n <= 0 || len(words) == 0 {
		return strings.Join(words, " "), ""
	}
	if n >= len(words) {
		return "", strings.Join(words, " ")
	}
	cut := len(words) - n
	return strings.Join(words[:cut], " "), strings.Join(words[cut:], " ")
}

// StepLabel formats a one-based step number as a zero-padded label.
func StepLabel(position int) string {
	return fmt.Sprintf("%02d", position)
}

func clamp01(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
