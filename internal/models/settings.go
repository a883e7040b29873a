package models

import (
	"encoding/json"
)

type PageTitle struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type QuickLink struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FooterService accepts either a bare string or an object with a name.
type FooterService struct {
	Name string `json:"name"`
}

func (f *FooterService) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		f.Name = asString
		return nil
	}
	type alias FooterService
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		f.Name = ""
		return nil
	}
	*f = FooterService(decoded)
	return nil
}

// SiteSettings is the global site configuration owned by the backend.
type SiteSettings struct {
	SiteName            string               `json:"site_name"`
	SiteTagline         string               `json:"site_tagline"`
	LogoURL             string               `json:"logo_url,omitempty"`
	LogoText            string               `json:"logo_text"`
	FaviconURL          string               `json:"favicon_url,omitempty"`
	FooterText          string               `json:"footer_text"`
	FooterCopyright     string               `json:"footer_copyright,omitempty"`
	FooterLinksTitle    string               `json:"footer_links_title,omitempty"`
	FooterServicesTitle string               `json:"footer_services_title,omitempty"`
	FooterContactTitle  string               `json:"footer_contact_title,omitempty"`
	FooterServices      []FooterService      `json:"footer_services,omitempty"`
	FooterQuickLinks    []QuickLink          `json:"footer_quick_links,omitempty"`
	ContactEmail        string               `json:"contact_email"`
	ContactPhone        string               `json:"contact_phone"`
	ContactAddress      string               `json:"contact_address"`
	WhatsAppNumber      string               `json:"whatsapp_number"`
	WhatsAppMessage     string               `json:"whatsapp_message"`
	GoogleMapsURL       string               `json:"google_maps_url"`
	FacebookURL         string               `json:"facebook_url"`
	InstagramURL        string               `json:"instagram_url"`
	TwitterURL          string               `json:"twitter_url"`
	LinkedInURL         string               `json:"linkedin_url,omitempty"`
	YouTubeURL          string               `json:"youtube_url,omitempty"`
	PageTitles          map[string]PageTitle `json:"page_titles,omitempty"`
	UpdatedAt           Timestamp            `json:"updated_at"`
}

// SiteSettingsUpdate mirrors the partial update accepted by PUT /settings.
type SiteSettingsUpdate struct {
	SiteName            *string              `json:"site_name,omitempty" validate:"omitempty,max=120"`
	SiteTagline         *string              `json:"site_tagline,omitempty" validate:"omitempty,max=200"`
	LogoURL             *string              `json:"logo_url,omitempty"`
	LogoText            *string              `json:"logo_text,omitempty" validate:"omitempty,max=120"`
	FaviconURL          *string              `json:"favicon_url,omitempty"`
	FooterText          *string              `json:"footer_text,omitempty"`
	FooterCopyright     *string              `json:"footer_copyright,omitempty"`
	FooterLinksTitle    *string              `json:"footer_links_title,omitempty"`
	FooterServicesTitle *string              `json:"footer_services_title,omitempty"`
	FooterContactTitle  *string              `json:"footer_contact_title,omitempty"`
	FooterServices      []FooterService      `json:"footer_services,omitempty"`
	FooterQuickLinks    []QuickLink          `json:"footer_quick_links,omitempty"`
	ContactEmail        *string              `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone        *string              `json:"contact_phone,omitempty" validate:"omitempty,phone"`
	ContactAddress      *string              `json:"contact_address,omitempty"`
	WhatsAppNumber      *string              `json:"whatsapp_number,omitempty" validate:"omitempty,numeric"`
	WhatsAppMessage     *string              `json:"whatsapp_message,omitempty"`
	GoogleMapsURL       *string              `json:"google_maps_url,omitempty"`
	FacebookURL         *string              `json:"facebook_url,omitempty"`
	InstagramURL        *string              `json:"instagram_url,omitempty"`
	TwitterURL          *string              `json:"twitter_url,omitempty"`
	LinkedInURL         *string              `json:"linkedin_url,omitempty"`
	YouTubeURL          *string              `json:"youtube_url,omitempty"`
	PageTitles          map[string]PageTitle `json:"page_titles,omitempty"`
}

// Theme holds the colours and fonts applied as CSS custom properties.
type Theme struct {
	PrimaryColor    string    `json:"primary_color"`
	AccentColor     string    `json:"accent_color"`
	BackgroundColor string    `json:"background_color"`
	TextColor       string    `json:"text_color"`
	HeadingFont     string    `json:"heading_font"`
	BodyFont        string    `json:"body_font"`
	ThemeMode       string    `json:"theme_mode"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

type ThemeUpdate struct {
	PrimaryColor    *string `json:"primary_color,omitempty" validate:"omitempty,hexcolor_css"`
	AccentColor     *string `json:"accent_color,omitempty" validate:"omitempty,hexcolor_css"`
	BackgroundColor *string `json:"background_color,omitempty" validate:"omitempty,hexcolor_css"`
	TextColor       *string `json:"text_color,omitempty" validate:"omitempty,hexcolor_css"`
	HeadingFont     *string `json:"heading_font,omitempty" validate:"omitempty,max=80,no_html"`
	BodyFont        *string `json:"body_font,omitempty" validate:"omitempty,max=80,no_html"`
	ThemeMode       *string `json:"theme_mode,omitempty" validate:"omitempty,oneof=light dark"`
}
