package editor

import (
	"encoding/json"
	"strings"

	"ellavera-site/internal/models"
)

// RawHolder keeps the JSON text an operator is typing for a section without a
// typed editor, next to the last content that parsed.
type RawHolder struct {
	Text    string         `json:"text"`
	Content models.JSONMap `json:"content"`
}

// NewRawHolder starts a holder from stored content.
func NewRawHolder(content models.JSONMap) RawHolder {
	cloned := content.Clone()
	return RawHolder{Text: PrettyJSON(cloned), Content: cloned}
}

// Apply records text. When it parses as a JSON object the content is
// replaced exactly; otherwise the previous content is kept and ok is false.
func (h RawHolder) Apply(text string) (next RawHolder, ok bool) {
	next = RawHolder{Text: text, Content: h.Content}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || parsed == nil {
		return next, false
	}
	next.Content = models.JSONMap(parsed)
	return next, true
}

// PrettyJSON renders content with two-space indentation.
func PrettyJSON(content models.JSONMap) string {
	if content == nil {
		content = models.JSONMap{}
	}
	data, err := json.MarshalIndent(map[string]interface{}(content), "", "  ")
	if err != nil {
		return "{}"
	}
	return strings.TrimSpace(string(data))
}
