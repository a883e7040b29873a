package repository

import (
	"context"

	"ellavera-site/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	Update(ctx context.Context, update models.SiteSettingsUpdate) (models.SiteSettings, error)
}

type settingsRepository struct {
	client *Client
}

func NewSettingsRepository(client *Client) SettingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.client.get(ctx, "/settings", nil, &settings)
	return settings, err
}

func (r *settingsRepository) Update(ctx context.Context, update models.SiteSettingsUpdate) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.client.put(ctx, "/settings", update, &settings)
	return settings, err
}

type ThemeRepository interface {
	Get(ctx context.Context) (models.Theme, error)
	Update(ctx context.Context, update models.ThemeUpdate) (models.Theme, error)
}

type themeRepository struct {
	client *Client
}

func NewThemeRepository(client *Client) ThemeRepository {
	return &themeRepository{client: client}
}

func (r *themeRepository) Get(ctx context.Context) (models.Theme, error) {
	var theme models.Theme
	err := r.client.get(ctx, "/theme", nil, &theme)
	return theme, err
}

func (r *themeRepository) Update(ctx context.Context, update models.ThemeUpdate) (models.Theme, error) {
	var theme models.Theme
	err := r.client.put(ctx, "/theme", update, &theme)
	return theme, err
}
