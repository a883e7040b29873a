package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetNavigationStateActivePath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TemplateHandler{}

	cases := []struct {
		name     string
		request  string
		expected string
		nav      string
	}{
		{name: "Trailing slash", request: "/about/", expected: "/about", nav: "about"},
		{name: "Double slash", request: "//products//p1//", expected: "/products/p1", nav: "products"},
		{name: "Root", request: "/", expected: "/", nav: "home"},
		{name: "Article detail", request: "/articles/a1", expected: "/articles/a1", nav: "articles"},
		{name: "Admin", request: "/admin/login", expected: "/admin/login", nav: "admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)
			req := httptest.NewRequest(http.MethodGet, tc.request, nil)
			ctx.Request = req

			data := gin.H{}
			handler.setNavigationState(ctx, data)

			if got := data["ActivePath"]; got != tc.expected {
				t.Fatalf("expected ActivePath %s, got %v", tc.expected, got)
			}
			if got := data["ActiveNav"]; got != tc.nav {
				t.Fatalf("expected ActiveNav %s, got %v", tc.nav, got)
			}
		})
	}
}

func TestBuildCanonicalURLDropsTrackingParameters(t *testing.T) {
	handler := &TemplateHandler{}

	requestURL, err := url.Parse("/products/?category=c1&utm_source=mail&gclid=x#top")
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}

	got := handler.buildCanonicalURL("https://ellavera.example/", requestURL)
	if got != "https://ellavera.example/products?category=c1" {
		t.Fatalf("unexpected canonical url %q", got)
	}

	contact, _ := url.Parse("/contact?sent=1")
	if got := handler.buildCanonicalURL("", contact); got != "/contact" {
		t.Fatalf("expected sent flag to be dropped, got %q", got)
	}
}
