package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp accepts the timestamp shapes the backend emits: RFC3339 with or
// without zone, with or without fractional seconds. Unparseable values
// decode to the zero time instead of failing the whole payload.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		t.Time = time.Time{}
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		t.Time = time.Time{}
		return nil
	}

	t.Time = parseTimestamp(asString)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
