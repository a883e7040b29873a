package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sitestate"
	"ellavera-site/pkg/logger"
	"ellavera-site/pkg/validator"
)

var ErrInvalidInput = errors.New("invalid input")

// InputError reports malformed operator or visitor input, caught before any
// backend call.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(format string, args ...interface{}) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// SiteService owns the process-wide settings and theme. It is the single
// writer of both holders.
type SiteService struct {
	settingsRepo repository.SettingsRepository
	themeRepo    repository.ThemeRepository

	settings *sitestate.Holder[models.SiteSettings]
	theme    *sitestate.ThemeState
}

func NewSiteService(settingsRepo repository.SettingsRepository, themeRepo repository.ThemeRepository) *SiteService {
	return &SiteService{
		settingsRepo: settingsRepo,
		themeRepo:    themeRepo,
		settings:     sitestate.NewHolder("settings", settingsRepo.Get),
		theme:        sitestate.NewThemeState(themeRepo.Get),
	}
}

// Load performs the startup fetch of settings and theme. Failures are logged
// by the holders and leave their fallbacks in place.
func (s *SiteService) Load(ctx context.Context) {
	_ = s.settings.Load(ctx)
	_ = s.theme.Load(ctx)
}

// Settings returns the current settings, or nil until they are ready.
func (s *SiteService) Settings() *models.SiteSettings {
	return s.settings.Get()
}

func (s *SiteService) SettingsState() sitestate.State {
	return s.settings.State()
}

func (s *SiteService) Theme() *sitestate.ThemeState {
	return s.theme
}

// SubscribeSettings registers fn for every new settings value.
func (s *SiteService) SubscribeSettings(fn func(models.SiteSettings)) func() {
	return s.settings.Subscribe(fn)
}

// UpdateSettings validates and writes settings, then refreshes the holder.
// A failed refresh keeps the previous value.
func (s *SiteService) UpdateSettings(ctx context.Context, update models.SiteSettingsUpdate) (*models.SiteSettings, error) {
	if err := validator.Validate(update); err != nil {
		return nil, invalidInput("invalid settings: %v", err)
	}
	if update.FooterText != nil {
		cleaned := validator.SanitizeHTML(*update.FooterText)
		update.FooterText = &cleaned
	}

	saved, err := s.settingsRepo.Update(ctx, update)
	if err != nil {
		return nil, err
	}

	if err := s.settings.Refresh(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Settings saved but refresh failed")
		return &saved, nil
	}
	return s.settings.Get(), nil
}

// UpdateTheme validates and writes the theme. The backend answer becomes the
// held theme directly.
func (s *SiteService) UpdateTheme(ctx context.Context, update models.ThemeUpdate) (*models.Theme, error) {
	if update.ThemeMode != nil {
		mode := strings.ToLower(strings.TrimSpace(*update.ThemeMode))
		update.ThemeMode = &mode
	}
	if err := validator.Validate(update); err != nil {
		return nil, invalidInput("invalid theme: %v", err)
	}

	saved, err := s.themeRepo.Update(ctx, update)
	if err != nil {
		return nil, err
	}

	s.theme.Set(saved)
	return &saved, nil
}

// RefreshTheme re-fetches the theme, as the theme editor does on open.
func (s *SiteService) RefreshTheme(ctx context.Context) (models.Theme, error) {
	if err := s.theme.Refresh(ctx); err != nil {
		return s.theme.Current(), err
	}
	return s.theme.Current(), nil
}
