package repository

import (
	"context"
	"fmt"

	"ellavera-site/internal/models"
)

type PageSectionRepository interface {
	ListSections(ctx context.Context, pageName string) ([]models.PageSection, error)
	CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error)
	UpdateSection(ctx context.Context, id string, req models.PageSectionRequest) (*models.PageSection, error)
	DeleteSection(ctx context.Context, id string) error
}

type pageSectionRepository struct {
	client *Client
}

func NewPageSectionRepository(client *Client) PageSectionRepository {
	return &pageSectionRepository{client: client}
}

func (r *pageSectionRepository) ListSections(ctx context.Context, pageName string) ([]models.PageSection, error) {
	var sections []models.PageSection
	if err := r.client.get(ctx, fmt.Sprintf("/pages/%s/sections", escapeID(pageName)), nil, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []models.PageSection{}
	}
	return sections, nil
}

func (r *pageSectionRepository) CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error) {
	var section models.PageSection
	if err := r.client.post(ctx, "/pages/sections", req, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// UpdateSection replaces the whole section; the backend does not merge.
func (r *pageSectionRepository) UpdateSection(ctx context.Context, id string, req models.PageSectionRequest) (*models.PageSection, error) {
	var section models.PageSection
	if err := r.client.put(ctx, "/pages/sections/"+escapeID(id), req, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *pageSectionRepository) DeleteSection(ctx context.Context, id string) error {
	return r.client.delete(ctx, "/pages/sections/"+escapeID(id))
}
