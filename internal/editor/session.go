package editor

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
	ErrSectionNotFound = errors.New("section not found in session")
	ErrSaveInProgress  = errors.New("section is already being saved")
)

const draftKeyPrefix = "draft-"

// Entry is one staged section of a session.
type Entry struct {
	// Key identifies the entry: the backend id, or a draft key until the
	// section is first saved.
	Key     string             `json:"key"`
	Section models.PageSection `json:"section"`
	// Raw is set for sections without a typed editor.
	Raw   *RawHolder `json:"raw,omitempty"`
	Dirty bool       `json:"dirty"`
}

// Persisted reports whether the backend knows this section.
func (e Entry) Persisted() bool {
	return e.Section.ID != ""
}

// Session is one operator's staged view of one page. It holds every section
// of the page, visible or not, in stored order.
type Session struct {
	ID        string    `json:"id"`
	PageName  string    `json:"page_name"`
	Entries   []Entry   `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession stages sections for editing.
func NewSession(pageName string, list []models.PageSection) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		PageName:  pageName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, section := range sections.SortByOrder(list) {
		s.Entries = append(s.Entries, newEntry(section))
	}
	return s
}

func newEntry(section models.PageSection) Entry {
	section = section.Clone()
	key := section.ID
	if key == "" {
		key = draftKeyPrefix + uuid.NewString()
	}
	entry := Entry{Key: key, Section: section}
	if !sections.IsKnownType(section.SectionType) {
		holder := NewRawHolder(section.Content)
		entry.Raw = &holder
	}
	return entry
}

// Entry returns the staged entry with key.
func (s *Session) Entry(key string) (Entry, bool) {
	if i := s.index(key); i >= 0 {
		return s.Entries[i], true
	}
	return Entry{}, false
}

// Sections returns the staged sections in session order.
func (s *Session) Sections() []models.PageSection {
	out := make([]models.PageSection, len(s.Entries))
	for i, entry := range s.Entries {
		out[i] = entry.Section
	}
	return out
}

// Clone returns a deep copy so stored sessions are never shared.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Entries = make([]Entry, len(s.Entries))
	for i, entry := range s.Entries {
		entry.Section = entry.Section.Clone()
		if entry.Raw != nil {
			raw := RawHolder{Text: entry.Raw.Text, Content: entry.Raw.Content.Clone()}
			entry.Raw = &raw
		}
		cloned.Entries[i] = entry
	}
	return &cloned
}

func (s *Session) index(key string) int {
	for i, entry := range s.Entries {
		if entry.Key == key {
			return i
		}
	}
	return -1
}

// replace swaps in a new value for the section at key, marking it dirty.
func (s *Session) replace(key string, section models.PageSection) (Entry, error) {
	i := s.index(key)
	if i < 0 {
		return Entry{}, ErrSectionNotFound
	}
	s.Entries[i].Section = section
	s.Entries[i].Dirty = true
	s.UpdatedAt = time.Now().UTC()
	return s.Entries[i], nil
}

// persisted records the backend view of an entry after a successful write.
func (s *Session) persisted(key string, section models.PageSection) Entry {
	i := s.index(key)
	if i < 0 {
		s.Entries = append(s.Entries, newEntry(section))
		return s.Entries[len(s.Entries)-1]
	}
	entry := newEntry(section)
	if raw := s.Entries[i].Raw; raw != nil && entry.Raw != nil {
		entry.Raw.Text = raw.Text
	}
	s.Entries[i] = entry
	s.UpdatedAt = time.Now().UTC()
	return entry
}

func (s *Session) remove(key string) bool {
	i := s.index(key)
	if i < 0 {
		return false
	}
	s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
	s.UpdatedAt = time.Now().UTC()
	return true
}
