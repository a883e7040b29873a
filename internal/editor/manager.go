package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ellavera-site/internal/models"
	"ellavera-site/internal/sections"
)

var (
	ErrInvalidOrder        = errors.New("order must list every section of the page exactly once")
	ErrSectionTypeRequired = errors.New("section type is required")
)

// SectionStore is the backend surface the editor persists through.
type SectionStore interface {
	ListSections(ctx context.Context, pageName string) ([]models.PageSection, error)
	CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error)
	UpdateSection(ctx context.Context, id string, req models.PageSectionRequest) (*models.PageSection, error)
	DeleteSection(ctx context.Context, id string) error
}

// requiredSection is staged as an unsaved draft when a page lacks it.
type requiredSection struct {
	sectionType string
	name        string
	order       int
}

var requiredSections = map[string][]requiredSection{
	"about": {{sectionType: sections.TypeProof, name: "Proof of Certifications", order: 5}},
}

// Manager runs editor operations against staged sessions.
type Manager struct {
	store  SectionStore
	drafts DraftStore

	mu     sync.Mutex
	saving map[string]struct{}
}

func NewManager(store SectionStore, drafts DraftStore) *Manager {
	return &Manager{
		store:  store,
		drafts: drafts,
		saving: make(map[string]struct{}),
	}
}

// Open fetches a page and stages it in a new session.
func (m *Manager) Open(ctx context.Context, pageName string) (*Session, error) {
	list, err := m.store.ListSections(ctx, pageName)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections of %s: %w", pageName, err)
	}

	session := NewSession(pageName, list)
	for _, required := range requiredSections[pageName] {
		if _, ok := sections.FindByType(list, required.sectionType); ok {
			continue
		}
		session.Entries = append(session.Entries, newEntry(models.PageSection{
			PageName:    pageName,
			SectionName: required.name,
			SectionType: required.sectionType,
			Content:     models.JSONMap(sections.DefaultsFor(required.sectionType)),
			Order:       required.order,
			Visible:     true,
		}))
	}

	if err := m.drafts.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store editor session: %w", err)
	}
	return session, nil
}

// Get returns a stored session.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	return m.drafts.Get(ctx, sessionID)
}

// Discard drops a session and every unsaved edit in it.
func (m *Manager) Discard(ctx context.Context, sessionID string) error {
	return m.drafts.Delete(ctx, sessionID)
}

// Form returns the editor form of one staged section.
func (m *Manager) Form(ctx context.Context, sessionID, key string) (Form, error) {
	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Form{}, err
	}
	entry, ok := session.Entry(key)
	if !ok {
		return Form{}, ErrSectionNotFound
	}
	return FormFor(entry), nil
}

// SetField stages a new value at path.
func (m *Manager) SetField(ctx context.Context, sessionID, key, path string, value interface{}) (Entry, error) {
	return m.edit(ctx, sessionID, key, func(section models.PageSection) (models.PageSection, error) {
		return SetField(section, path, value)
	})
}

// SetLines stages the text of a lines field, splitting it on the field separator.
func (m *Manager) SetLines(ctx context.Context, sessionID, key, fieldKey, text string) (Entry, error) {
	return m.edit(ctx, sessionID, key, func(section models.PageSection) (models.PageSection, error) {
		field, ok := sections.FindField(fieldsOf(section), fieldKey)
		if !ok || field.Kind != sections.KindLines {
			return section, fmt.Errorf("%w: %s", ErrInvalidPath, fieldKey)
		}
		return SetField(section, fieldKey, ParseLines(field, text))
	})
}

// AddItem stages a blank item at the end of a list field.
func (m *Manager) AddItem(ctx context.Context, sessionID, key, listKey string) (Entry, error) {
	return m.edit(ctx, sessionID, key, func(section models.PageSection) (models.PageSection, error) {
		return AddItem(section, listKey)
	})
}

// RemoveItem stages the removal of a list item.
func (m *Manager) RemoveItem(ctx context.Context, sessionID, key, listKey string, index int) (Entry, error) {
	return m.edit(ctx, sessionID, key, func(section models.PageSection) (models.PageSection, error) {
		return RemoveItem(section, listKey, index)
	})
}

// Attributes are the non-content properties of a section.
type Attributes struct {
	SectionName *string `json:"section_name"`
	Order       *int    `json:"order"`
}

// SetAttributes stages a new name or order value.
func (m *Manager) SetAttributes(ctx context.Context, sessionID, key string, attrs Attributes) (Entry, error) {
	return m.edit(ctx, sessionID, key, func(section models.PageSection) (models.PageSection, error) {
		next := section.Clone()
		if attrs.SectionName != nil {
			next.SectionName = *attrs.SectionName
		}
		if attrs.Order != nil {
			next.Order = *attrs.Order
		}
		return next, nil
	})
}

// ApplyRaw feeds the raw JSON text of a section. Text that does not parse
// is recorded but leaves the staged content as it was.
func (m *Manager) ApplyRaw(ctx context.Context, sessionID, key, text string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, false, err
	}
	i := session.index(key)
	if i < 0 {
		return Entry{}, false, ErrSectionNotFound
	}

	entry := session.Entries[i]
	holder := NewRawHolder(entry.Section.Content)
	if entry.Raw != nil {
		holder = *entry.Raw
	}
	next, ok := holder.Apply(text)
	entry.Raw = &next
	if ok {
		entry.Section = entry.Section.Clone()
		entry.Section.Content = next.Content.Clone()
		entry.Dirty = true
	}
	session.Entries[i] = entry

	if err := m.drafts.Put(ctx, session); err != nil {
		return Entry{}, false, err
	}
	return entry, ok, nil
}

func (m *Manager) edit(ctx context.Context, sessionID, key string, apply func(models.PageSection) (models.PageSection, error)) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := session.Entry(key)
	if !ok {
		return Entry{}, ErrSectionNotFound
	}

	next, err := apply(entry.Section)
	if err != nil {
		return Entry{}, err
	}
	updated, err := session.replace(key, next)
	if err != nil {
		return Entry{}, err
	}
	if updated.Raw != nil {
		holder := NewRawHolder(next.Content)
		session.Entries[session.index(key)].Raw = &holder
		updated.Raw = &holder
	}

	if err := m.drafts.Put(ctx, session); err != nil {
		return Entry{}, err
	}
	return updated, nil
}

// Save sends the whole staged section to the backend: a create for drafts,
// an update otherwise. On failure the staged edit stays as it was.
func (m *Manager) Save(ctx context.Context, sessionID, key string) (Entry, error) {
	if !m.beginSave(sessionID, key) {
		return Entry{}, ErrSaveInProgress
	}
	defer m.endSave(sessionID, key)

	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := session.Entry(key)
	if !ok {
		return Entry{}, ErrSectionNotFound
	}

	saved, err := m.write(ctx, entry.Section)
	if err != nil {
		return Entry{}, err
	}
	return m.record(ctx, sessionID, key, *saved)
}

// ToggleVisibility flips the visible flag and persists it right away.
// Drafts only change in the session.
func (m *Manager) ToggleVisibility(ctx context.Context, sessionID, key string) (Entry, error) {
	if !m.beginSave(sessionID, key) {
		return Entry{}, ErrSaveInProgress
	}
	defer m.endSave(sessionID, key)

	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := session.Entry(key)
	if !ok {
		return Entry{}, ErrSectionNotFound
	}

	toggled := entry.Section.Clone()
	toggled.Visible = !toggled.Visible
	if !entry.Persisted() {
		return m.edit(ctx, sessionID, key, func(models.PageSection) (models.PageSection, error) {
			return toggled, nil
		})
	}

	saved, err := m.write(ctx, toggled)
	if err != nil {
		return Entry{}, err
	}
	return m.record(ctx, sessionID, key, *saved)
}

// CreateSection adds a section with default content after every existing
// section and persists it.
func (m *Manager) CreateSection(ctx context.Context, sessionID, sectionType, sectionName string) (Entry, error) {
	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, err
	}

	sectionType = sections.NormalizeType(sectionType)
	if sectionType == "" {
		return Entry{}, ErrSectionTypeRequired
	}
	if sectionName == "" {
		sectionName = sectionType
		if meta, ok := sections.DefaultRegistry().GetMetadata(sectionType); ok {
			sectionName = meta.Name
		}
	}

	created, err := m.store.CreateSection(ctx, models.PageSectionRequest{
		PageName:    session.PageName,
		SectionName: sectionName,
		SectionType: sectionType,
		Content:     models.JSONMap(sections.DefaultsFor(sectionType)),
		Order:       sections.NextOrder(session.Sections()),
		Visible:     true,
	})
	if err != nil {
		return Entry{}, err
	}
	return m.record(ctx, sessionID, created.ID, *created)
}

// DeleteSection removes a section from the backend and the session.
func (m *Manager) DeleteSection(ctx context.Context, sessionID, key string) error {
	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	entry, ok := session.Entry(key)
	if !ok {
		return ErrSectionNotFound
	}
	if entry.Persisted() {
		if err := m.store.DeleteSection(ctx, entry.Section.ID); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, err = m.drafts.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.remove(key)
	return m.drafts.Put(ctx, session)
}

// ReorderSections renumbers the page to follow keys, one based, and persists
// every section whose order changed. It stops at the first failed write;
// sections written before it keep their new order.
func (m *Manager) ReorderSections(ctx context.Context, sessionID string, keys []string) (*Session, error) {
	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(session.Entries) {
		return nil, ErrInvalidOrder
	}
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup || session.index(key) < 0 {
			return nil, ErrInvalidOrder
		}
		seen[key] = struct{}{}
	}

	for position, key := range keys {
		entry, _ := session.Entry(key)
		order := position + 1
		if entry.Section.Order == order {
			continue
		}
		if !entry.Persisted() {
			if _, err := m.SetAttributes(ctx, sessionID, key, Attributes{Order: &order}); err != nil {
				return nil, err
			}
			continue
		}

		moved := entry.Section.Clone()
		moved.Order = order
		saved, err := m.write(ctx, moved)
		if err != nil {
			return nil, err
		}
		if _, err := m.record(ctx, sessionID, key, *saved); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, err = m.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	position := make(map[string]int, len(keys))
	for i, key := range keys {
		position[key] = i
	}
	sort.SliceStable(session.Entries, func(i, j int) bool {
		pi, iok := position[session.Entries[i].Key]
		pj, jok := position[session.Entries[j].Key]
		if iok && jok {
			return pi < pj
		}
		return iok && !jok
	})
	if err := m.drafts.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (m *Manager) write(ctx context.Context, section models.PageSection) (*models.PageSection, error) {
	if section.ID == "" {
		return m.store.CreateSection(ctx, section.ToRequest())
	}
	return m.store.UpdateSection(ctx, section.ID, section.ToRequest())
}

// record stores the backend view of a section after a successful write.
func (m *Manager) record(ctx context.Context, sessionID, key string, saved models.PageSection) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.drafts.Get(ctx, sessionID)
	if err != nil {
		return Entry{}, err
	}
	entry := session.persisted(key, saved)
	if err := m.drafts.Put(ctx, session); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (m *Manager) beginSave(sessionID, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := sessionID + "/" + key
	if _, busy := m.saving[id]; busy {
		return false
	}
	m.saving[id] = struct{}{}
	return true
}

func (m *Manager) endSave(sessionID, key string) {
	m.mu.Lock()
	delete(m.saving, sessionID+"/"+key)
	m.mu.Unlock()
}
