package sitestate

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"ellavera-site/internal/models"
)

var (
	themeColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	fontNamePattern   = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,80}$`)
)

// DefaultTheme is applied until the first successful fetch.
func DefaultTheme() models.Theme {
	return models.Theme{
		PrimaryColor:    "#06b6d4",
		AccentColor:     "#0891b2",
		BackgroundColor: "#ffffff",
		TextColor:       "#0f172a",
		HeadingFont:     "Playfair Display",
		BodyFont:        "Inter",
		ThemeMode:       "light",
	}
}

// CSSVar is one custom property of the theme style block.
type CSSVar struct {
	Name  string
	Value string
}

// ThemeVariables projects a theme onto CSS custom properties. Values that
// are not plain colours or font names fall back to the default theme.
func ThemeVariables(theme models.Theme) []CSSVar {
	defaults := DefaultTheme()
	primary := themeColor(theme.PrimaryColor, defaults.PrimaryColor)
	accent := themeColor(theme.AccentColor, defaults.AccentColor)

	return []CSSVar{
		{Name: "--primary", Value: primary},
		{Name: "--accent", Value: accent},
		{Name: "--background", Value: themeColor(theme.BackgroundColor, defaults.BackgroundColor)},
		{Name: "--foreground", Value: themeColor(theme.TextColor, defaults.TextColor)},
		{Name: "--primary-light", Value: fmt.Sprintf("color-mix(in srgb, %s 20%%, white)", primary)},
		{Name: "--primary-dark", Value: fmt.Sprintf("color-mix(in srgb, %s 100%%, black 20%%)", primary)},
		{Name: "--accent-light", Value: fmt.Sprintf("color-mix(in srgb, %s 20%%, white)", accent)},
		{Name: "--accent-dark", Value: fmt.Sprintf("color-mix(in srgb, %s 100%%, black 20%%)", accent)},
		{Name: "--font-heading", Value: fontStack(theme.HeadingFont, defaults.HeadingFont, "serif")},
		{Name: "--font-body", Value: fontStack(theme.BodyFont, defaults.BodyFont, "sans-serif")},
	}
}

// ThemeStyle renders the :root rule the layout embeds in a style element.
func ThemeStyle(theme models.Theme) string {
	var sb strings.Builder
	sb.WriteString(":root {")
	for _, v := range ThemeVariables(theme) {
		sb.WriteString(" ")
		sb.WriteString(v.Name)
		sb.WriteString(": ")
		sb.WriteString(v.Value)
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return sb.String()
}

// FontsURL is the Google Fonts stylesheet that loads the theme fonts.
func FontsURL(theme models.Theme) string {
	defaults := DefaultTheme()
	families := make([]string, 0, 2)
	for _, font := range []string{fontName(theme.HeadingFont, defaults.HeadingFont), fontName(theme.BodyFont, defaults.BodyFont)} {
		family := "family=" + strings.ReplaceAll(font, " ", "+") + ":wght@400;500;600;700"
		if !slices.Contains(families, family) {
			families = append(families, family)
		}
	}
	return "https://fonts.googleapis.com/css2?" + strings.Join(families, "&") + "&display=swap"
}

func fontName(value, fallback string) string {
	value = strings.TrimSpace(value)
	if !fontNamePattern.MatchString(value) {
		return fallback
	}
	return value
}

func themeColor(value, fallback string) string {
	value = strings.TrimSpace(value)
	if themeColorPattern.MatchString(value) {
		return value
	}
	return fallback
}

func fontStack(value, fallback, generic string) string {
	return fmt.Sprintf("'%s', %s", fontName(value, fallback), generic)
}

// ThemeState holds the theme and keeps its style block current.
type ThemeState struct {
	*Holder[models.Theme]

	mu    sync.RWMutex
	style string
}

func NewThemeState(fetch func(ctx context.Context) (models.Theme, error)) *ThemeState {
	t := &ThemeState{
		Holder: NewHolder("theme", fetch),
		style:  ThemeStyle(DefaultTheme()),
	}
	t.Subscribe(func(theme models.Theme) {
		style := ThemeStyle(theme)
		t.mu.Lock()
		t.style = style
		t.mu.Unlock()
	})
	return t
}

// Current returns the held theme, or the defaults before the first success.
func (t *ThemeState) Current() models.Theme {
	if theme := t.Get(); theme != nil {
		return *theme
	}
	return DefaultTheme()
}

// Style returns the style block of the current theme.
func (t *ThemeState) Style() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.style
}

// Dark reports whether the current theme asks for dark mode.
func (t *ThemeState) Dark() bool {
	return strings.EqualFold(t.Current().ThemeMode, "dark")
}
