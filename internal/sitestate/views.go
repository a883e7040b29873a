package sitestate

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"ellavera-site/internal/models"
)

const (
	DefaultSiteName = "Ellavera Beauty"
	titleSuffix     = "Premium Cosmetic Manufacturing"

	defaultFooterText      = "Premium cosmetic manufacturing solutions for your brand. We create beauty products that inspire confidence."
	defaultAddress         = "Jakarta, Indonesia"
	defaultPhone           = "+62 123 456 7890"
	defaultEmail           = "info@ellavera.com"
	defaultWhatsAppNumber  = "6281234567890"
	defaultWhatsAppMessage = "Hello Ellavera Beauty! I'm interested in your cosmetic manufacturing services."
	defaultMapURL          = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d253840.65833061103!2d106.68942995!3d-6.229386599999999!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x2e69f3e945e34b9d%3A0x5371bf0fdad786a2!2sJakarta%2C%20Indonesia!5e0!3m2!1sen!2s!4v1620000000000!5m2!1sen!2s"
	mapEmbedPrefix         = "https://www.google.com/maps/embed"
)

// NavItems are the header links.
func NavItems() []models.QuickLink {
	return []models.QuickLink{
		{Name: "Home", Path: "/"},
		{Name: "Services", Path: "/services"},
		{Name: "Products", Path: "/products"},
		{Name: "Gallery", Path: "/gallery"},
		{Name: "Our Clients", Path: "/clients"},
		{Name: "Articles", Path: "/articles"},
		{Name: "About Us", Path: "/about"},
		{Name: "Contact", Path: "/contact"},
	}
}

// DefaultQuickLinks are the footer links used when settings carry none.
func DefaultQuickLinks() []models.QuickLink {
	return []models.QuickLink{
		{Name: "Home", Path: "/"},
		{Name: "Services", Path: "/services"},
		{Name: "Products", Path: "/products"},
		{Name: "Our Clients", Path: "/clients"},
		{Name: "Articles", Path: "/articles"},
		{Name: "About Us", Path: "/about"},
	}
}

// DefaultFooterServices are listed when settings carry none.
func DefaultFooterServices() []string {
	return []string{
		"Skincare Manufacturing",
		"Body Care Products",
		"Hair Care Solutions",
		"Fragrance Development",
		"Private Label Services",
	}
}

// DefaultPageTitles are the list page headings used when settings carry none.
func DefaultPageTitles() map[string]models.PageTitle {
	return map[string]models.PageTitle{
		"products": {Title: "Our Products", Subtitle: "Discover our range of quality products"},
		"services": {Title: "Our Services", Subtitle: "Professional solutions for your needs"},
		"articles": {Title: "Articles & News", Subtitle: "Latest updates and insights"},
		"gallery":  {Title: "Gallery", Subtitle: "See our work and facilities"},
		"clients":  {Title: "Our Clients", Subtitle: "Trusted by leading brands"},
		"contact":  {Title: "Contact Us", Subtitle: "Get in touch with our team"},
		"about":    {Title: "About Us", Subtitle: "Learn more about our company"},
	}
}

// HeaderView is what the page header shows.
type HeaderView struct {
	LogoURL  string
	LogoText string
	LogoAlt  string
	Nav      []models.QuickLink
}

// Header projects settings onto the header. Nil settings show the fallback
// logo text.
func Header(settings *models.SiteSettings) HeaderView {
	view := HeaderView{LogoText: DefaultSiteName, LogoAlt: "Logo", Nav: NavItems()}
	if settings == nil {
		return view
	}
	view.LogoURL = strings.TrimSpace(settings.LogoURL)
	view.LogoText = firstNonEmpty(settings.LogoText, settings.SiteName, DefaultSiteName)
	view.LogoAlt = firstNonEmpty(settings.SiteName, "Logo")
	return view
}

// SocialLink is one footer social icon.
type SocialLink struct {
	Network string
	URL     string
}

// FooterView is what the page footer shows.
type FooterView struct {
	SiteName      string
	Text          string
	Social        []SocialLink
	LinksTitle    string
	QuickLinks    []models.QuickLink
	ServicesTitle string
	Services      []string
	ContactTitle  string
	Address       string
	Phone         string
	Email         string
	Copyright     string
}

// Footer projects settings onto the footer. It returns nil when settings are
// not available, and the footer is then left out of the page.
func Footer(settings *models.SiteSettings, now time.Time) *FooterView {
	if settings == nil {
		return nil
	}

	siteName := firstNonEmpty(settings.SiteName, DefaultSiteName)
	view := &FooterView{
		SiteName:      siteName,
		Text:          firstNonEmpty(settings.FooterText, defaultFooterText),
		LinksTitle:    firstNonEmpty(settings.FooterLinksTitle, "Quick Links"),
		ServicesTitle: firstNonEmpty(settings.FooterServicesTitle, "Our Services"),
		ContactTitle:  firstNonEmpty(settings.FooterContactTitle, "Contact Us"),
		Address:       firstNonEmpty(settings.ContactAddress, defaultAddress),
		Phone:         firstNonEmpty(settings.ContactPhone, defaultPhone),
		Email:         firstNonEmpty(settings.ContactEmail, defaultEmail),
		Copyright: firstNonEmpty(settings.FooterCopyright,
			fmt.Sprintf("© %d %s. All rights reserved.", now.Year(), siteName)),
	}

	for _, link := range []SocialLink{
		{Network: "facebook", URL: settings.FacebookURL},
		{Network: "instagram", URL: settings.InstagramURL},
		{Network: "twitter", URL: settings.TwitterURL},
		{Network: "linkedin", URL: settings.LinkedInURL},
		{Network: "youtube", URL: settings.YouTubeURL},
	} {
		link.URL = strings.TrimSpace(link.URL)
		if link.URL != "" && link.URL != "#" {
			view.Social = append(view.Social, link)
		}
	}

	if len(settings.FooterQuickLinks) > 0 {
		view.QuickLinks = settings.FooterQuickLinks
	} else {
		view.QuickLinks = DefaultQuickLinks()
	}

	for _, service := range settings.FooterServices {
		view.Services = append(view.Services, service.Name)
	}
	if len(view.Services) == 0 {
		view.Services = DefaultFooterServices()
	}

	return view
}

// ContactView is the info column of the contact page.
type ContactView struct {
	Address string
	Phone   string
	Email   string
	MapURL  string
}

// Contact builds the contact info column. Only Google Maps embed URLs are
// used for the map frame.
func Contact(settings *models.SiteSettings) ContactView {
	view := ContactView{
		Address: defaultAddress,
		Phone:   defaultPhone,
		Email:   defaultEmail,
		MapURL:  defaultMapURL,
	}
	if settings == nil {
		return view
	}
	view.Address = firstNonEmpty(settings.ContactAddress, defaultAddress)
	view.Phone = firstNonEmpty(settings.ContactPhone, defaultPhone)
	view.Email = firstNonEmpty(settings.ContactEmail, defaultEmail)
	if mapURL := strings.TrimSpace(settings.GoogleMapsURL); strings.HasPrefix(mapURL, mapEmbedPrefix) {
		view.MapURL = mapURL
	}
	return view
}

// DocumentTitle is the browser title of every page.
func DocumentTitle(settings *models.SiteSettings) string {
	name := DefaultSiteName
	if settings != nil {
		name = firstNonEmpty(settings.SiteName, DefaultSiteName)
	}
	return fmt.Sprintf("%s - %s", name, titleSuffix)
}

// Favicon returns the favicon URL from settings, or "".
func Favicon(settings *models.SiteSettings) string {
	if settings == nil {
		return ""
	}
	return strings.TrimSpace(settings.FaviconURL)
}

// PageTitle returns the heading of a list page, preferring settings.
func PageTitle(settings *models.SiteSettings, key string) models.PageTitle {
	if settings != nil {
		if title, ok := settings.PageTitles[key]; ok && strings.TrimSpace(title.Title) != "" {
			return title
		}
	}
	return DefaultPageTitles()[key]
}

// WhatsAppLink builds the click-to-chat URL of the floating button.
func WhatsAppLink(settings *models.SiteSettings) string {
	number, message := defaultWhatsAppNumber, defaultWhatsAppMessage
	if settings != nil {
		number = firstNonEmpty(digitsOnly(settings.WhatsAppNumber), defaultWhatsAppNumber)
		message = firstNonEmpty(settings.WhatsAppMessage, defaultWhatsAppMessage)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, strings.ReplaceAll(url.QueryEscape(message), "+", "%20"))
}

func digitsOnly(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return value
		}
	}
	return ""
}
