package sections

import (
	"fmt"
	"sort"
	"sync"

	"ellavera-site/internal/models"
)

// RenderContext exposes the capabilities section renderers need.
type RenderContext interface {
	// SanitizeHTML cleans potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
	// Data returns entities fetched alongside the page sections.
	Data() PageData
}

// PageData carries the separately fetched entities that data-fed sections
// render instead of their content.
type PageData struct {
	Products []models.Product
	Clients  []models.Client
	Reviews  []models.Review
	Services []models.Service
	Articles []models.Article
}

// Block is one section prepared for rendering.
type Block struct {
	Section models.PageSection
	Content Content
	// Shade is the background class; empty for hero sections.
	Shade string
}

// Renderer renders a prepared section block into HTML.
type Renderer func(ctx RenderContext, prefix string, block Block) string

// SectionMetadata describes a section type for the admin editor.
type SectionMetadata struct {
	Type        string                 `json:"type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Icon        string                 `json:"icon,omitempty"`
	Fields      []Field                `json:"fields"`
	Defaults    map[string]interface{} `json:"defaults"`
}

// SectionDescriptor wraps a renderer with its metadata.
type SectionDescriptor struct {
	Renderer Renderer
	Metadata SectionMetadata
}

// Registry stores the mapping between section types and their descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*SectionDescriptor
}

// NewRegistry creates an empty section registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*SectionDescriptor)}
}

// Register associates a descriptor with its normalised type. Fields and
// defaults are filled from the content schema when left empty.
func (r *Registry) Register(desc *SectionDescriptor) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if desc == nil {
		return fmt.Errorf("descriptor is nil")
	}

	sectionType := NormalizeType(desc.Metadata.Type)
	if sectionType == "" {
		return fmt.Errorf("section type is empty")
	}
	if desc.Renderer == nil {
		return fmt.Errorf("renderer is nil for type %s", sectionType)
	}

	stored := *desc
	stored.Metadata.Type = sectionType
	if stored.Metadata.Fields == nil {
		stored.Metadata.Fields = Fields(sectionType)
	}
	if stored.Metadata.Defaults == nil {
		stored.Metadata.Defaults = DefaultsFor(sectionType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descriptors == nil {
		r.descriptors = make(map[string]*SectionDescriptor)
	}
	r.descriptors[sectionType] = &stored
	return nil
}

// MustRegister registers the descriptor and panics if registration fails.
func (r *Registry) MustRegister(desc *SectionDescriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for a section type if it exists.
func (r *Registry) Get(sectionType string) (Renderer, bool) {
	desc, ok := r.descriptor(sectionType)
	if !ok {
		return nil, false
	}
	return desc.Renderer, true
}

// GetMetadata retrieves metadata for a section type.
func (r *Registry) GetMetadata(sectionType string) (SectionMetadata, bool) {
	desc, ok := r.descriptor(sectionType)
	if !ok {
		return SectionMetadata{}, false
	}
	return desc.Metadata, true
}

func (r *Registry) descriptor(sectionType string) (*SectionDescriptor, bool) {
	if r == nil {
		return nil, false
	}

	sectionType = NormalizeType(sectionType)
	if sectionType == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[sectionType]
	return desc, ok
}

// ListMetadata returns metadata for all registered sections sorted by type.
func (r *Registry) ListMetadata() []SectionMetadata {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]SectionMetadata, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		result = append(result, desc.Metadata)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}
