package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/config"
	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sections"
	"ellavera-site/internal/service"
	"ellavera-site/internal/web"
	"ellavera-site/pkg/utils"
)

type fakeBackend struct {
	mu    sync.Mutex
	leads []models.ContactLeadRequest
}

func (b *fakeBackend) routes() http.Handler {
	writeJSON := func(w http.ResponseWriter, status int, payload interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pages/home/sections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": "s2", "page_name": "home", "section_type": "cta", "order": 2, "visible": true, "content": map[string]interface{}{"heading": "Start today"}},
			{"id": "s1", "page_name": "home", "section_type": "hero", "order": 1, "visible": true, "content": map[string]interface{}{}},
			{"id": "s3", "page_name": "home", "section_type": "cta", "order": 3, "visible": false, "content": map[string]interface{}{"heading": "Hidden heading"}},
		})
	})
	mux.HandleFunc("GET /api/pages/about/sections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "database unavailable"})
	})
	mux.HandleFunc("GET /api/pages/contact/sections", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": "p1", "name": "Hydra Serum", "category_id": "c1", "description": "Deep hydration", "images": []string{"https://cdn.example/p1.jpg"}},
		})
	})
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "p1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "p1", "name": "Hydra Serum", "description": "Deep hydration"})
	})
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": "c1", "name": "Skincare"}})
	})
	mux.HandleFunc("GET /api/articles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": "a1", "title": "Clean Beauty", "category": "Trends", "published": true, "read_time": 4},
			{"id": "a2", "title": "Factory Tour", "category": "News", "published": true, "read_time": 2},
		})
	})
	mux.HandleFunc("GET /api/articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		published := r.PathValue("id") == "a1"
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": r.PathValue("id"), "title": "Clean Beauty", "published": published,
			"content": "## Why it matters\n\nFormulas **matter**.\n\n<script>alert(1)</script>",
		})
	})
	for _, path := range []string{"/api/clients", "/api/reviews", "/api/services", "/api/gallery"} {
		mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []interface{}{})
		})
	}
	mux.HandleFunc("GET /api/gallery/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{"Factory"})
	})
	mux.HandleFunc("POST /api/contact", func(w http.ResponseWriter, r *http.Request) {
		var lead models.ContactLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad body"})
			return
		}
		if lead.Company == "fail" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "try later"})
			return
		}
		b.mu.Lock()
		b.leads = append(b.leads, lead)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": "l1", "name": lead.Name, "email": lead.Email, "message": lead.Message})
	})
	return mux
}

func (b *fakeBackend) leadCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.leads)
}

func newTestTemplateHandler(t *testing.T) (*TemplateHandler, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{}
	server := httptest.NewServer(backend.routes())
	t.Cleanup(server.Close)

	client := repository.NewClientWithHTTP(server.URL+"/api", server.Client())
	products := repository.NewProductRepository(client)
	clients := repository.NewClientRepository(client)

	pages := service.NewPageService(repository.NewPageSectionRepository(client), products, clients, repository.NewReviewRepository(client))
	content := service.NewContentService(
		repository.NewCategoryRepository(client),
		products,
		repository.NewArticleRepository(client),
		clients,
		repository.NewServiceRepository(client),
		repository.NewGalleryRepository(client),
	)
	site := service.NewSiteService(repository.NewSettingsRepository(client), repository.NewThemeRepository(client))
	leads := service.NewLeadService(repository.NewLeadRepository(client))

	templates, err := utils.LoadTemplates(web.Templates(), web.AssetVersion)
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	cfg := &config.Config{SiteName: "Ellavera Beauty", SiteURL: "https://ellavera.example", CSRFCookieName: "csrf_token"}
	handler, err := NewTemplateHandler(pages, content, site, leads, sections.DefaultRegistry(), cfg, templates)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return handler, backend
}

func newPublicRouter(handler *TemplateHandler) *gin.Engine {
	router := gin.New()
	router.GET("/", handler.RenderHome)
	router.GET("/about", handler.RenderAbout)
	router.GET("/contact", handler.RenderContact)
	router.POST("/contact", handler.SubmitContact)
	router.GET("/products", handler.RenderProducts)
	router.GET("/products/:id", handler.RenderProduct)
	router.GET("/articles", handler.RenderArticles)
	router.GET("/articles/:id", handler.RenderArticle)
	router.GET("/gallery", handler.RenderGallery)
	router.GET("/admin/login", handler.RenderLogin)
	router.GET("/admin", handler.RenderAdmin)
	router.NoRoute(handler.NotFound)
	return router
}

func serve(router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRenderHomeOrdersVisibleSections(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	recorder := serve(newPublicRouter(handler), http.MethodGet, "/", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()

	hero := strings.Index(body, "Transform Your Beauty Brand with")
	cta := strings.Index(body, "Start today")
	if hero < 0 || cta < 0 || hero > cta {
		t.Fatalf("expected hero defaults before the cta, got hero=%d cta=%d", hero, cta)
	}
	if strings.Contains(body, "Hidden heading") {
		t.Fatalf("expected invisible section to be skipped")
	}
	if !strings.Contains(body, "--primary: #06b6d4") {
		t.Fatalf("expected default theme variables in the layout")
	}
	if !strings.Contains(body, "Ellavera Beauty - Premium Cosmetic Manufacturing") {
		t.Fatalf("expected default document title")
	}
	if strings.Contains(body, "site-footer__grid") {
		t.Fatalf("expected no footer before settings are loaded")
	}
}

func TestRenderSectionPageFailureShowsNotice(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	recorder := serve(newPublicRouter(handler), http.MethodGet, "/about", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Failed to load page content") {
		t.Fatalf("expected load failure notice, got %s", recorder.Body.String())
	}
}

func TestSubmitContact(t *testing.T) {
	handler, backend := newTestTemplateHandler(t)
	router := newPublicRouter(handler)

	form := url.Values{"name": {"Rina"}, "email": {"rina@example.com"}, "message": {"Need a quote"}}
	recorder := serve(router, http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if location := recorder.Header().Get("Location"); !strings.HasPrefix(location, "/contact?sent=1") {
		t.Fatalf("unexpected redirect %q", location)
	}
	if backend.leadCount() != 1 {
		t.Fatalf("expected one forwarded lead, got %d", backend.leadCount())
	}

	recorder = serve(router, http.MethodGet, "/contact?sent=1", nil)
	if !strings.Contains(recorder.Body.String(), "Message sent successfully!") {
		t.Fatalf("expected success notice")
	}

	invalid := url.Values{"name": {"Rina"}, "email": {"not-an-email"}, "message": {"Hi"}}
	recorder = serve(router, http.MethodPost, "/contact", strings.NewReader(invalid.Encode()))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `value="Rina"`) {
		t.Fatalf("expected the form to keep submitted values")
	}
	if backend.leadCount() != 1 {
		t.Fatalf("expected invalid lead not to reach the backend")
	}

	failing := url.Values{"name": {"Rina"}, "email": {"rina@example.com"}, "company": {"fail"}, "message": {"Hi"}}
	recorder = serve(router, http.MethodPost, "/contact", strings.NewReader(failing.Encode()))
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the backend fails, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Failed to send message. Please try again.") {
		t.Fatalf("expected failure notice")
	}
}

func TestRenderProductPages(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	router := newPublicRouter(handler)

	recorder := serve(router, http.MethodGet, "/products?category=c1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Our Products") || !strings.Contains(body, "Hydra Serum") {
		t.Fatalf("expected default page title and product card")
	}
	if !strings.Contains(body, `href="/products/p1"`) {
		t.Fatalf("expected link to the product detail")
	}

	recorder = serve(router, http.MethodGet, "/products/p1", nil)
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), "Deep hydration") {
		t.Fatalf("expected product detail, got %d", recorder.Code)
	}

	recorder = serve(router, http.MethodGet, "/products/missing", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing product, got %d", recorder.Code)
	}
}

func TestRenderArticles(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	router := newPublicRouter(handler)

	recorder := serve(router, http.MethodGet, "/articles?category=News", nil)
	body := recorder.Body.String()
	if !strings.Contains(body, "Factory Tour") || strings.Contains(body, "Clean Beauty</h3>") {
		t.Fatalf("expected only News articles, got %s", body)
	}
	if !strings.Contains(body, `href="/articles?category=Trends"`) {
		t.Fatalf("expected every category in the filter bar")
	}

	recorder = serve(router, http.MethodGet, "/articles/a1", nil)
	body = recorder.Body.String()
	if recorder.Code != http.StatusOK || !strings.Contains(body, "<strong>matter</strong>") {
		t.Fatalf("expected rendered markdown, got %d", recorder.Code)
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("expected article body to be sanitised")
	}

	recorder = serve(router, http.MethodGet, "/articles/a2", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected unpublished article to be 404, got %d", recorder.Code)
	}
}

func TestRenderAdminPages(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	router := newPublicRouter(handler)

	recorder := serve(router, http.MethodGet, "/admin/login?next=//evil.example&error=credentials", nil)
	body := recorder.Body.String()
	if !strings.Contains(body, `name="next" value="/admin"`) {
		t.Fatalf("expected unsafe next to fall back to /admin")
	}
	if !strings.Contains(body, "Invalid email or password.") {
		t.Fatalf("expected credentials error")
	}
	if recorder.Header().Get("X-Robots-Tag") != "noindex, nofollow" {
		t.Fatalf("expected admin pages to be noindex")
	}

	recorder = serve(router, http.MethodGet, "/admin", nil)
	body = recorder.Body.String()
	if !strings.Contains(body, `data-pages="about,contact,home"`) || !strings.Contains(body, "/static/js/admin.js") {
		t.Fatalf("expected the editor shell, got %s", body)
	}
}

func TestNotFound(t *testing.T) {
	handler, _ := newTestTemplateHandler(t)
	router := newPublicRouter(handler)

	recorder := serve(router, http.MethodGet, "/nowhere", nil)
	if recorder.Code != http.StatusNotFound || !strings.Contains(recorder.Body.String(), "404 - Page Not Found") {
		t.Fatalf("expected rendered 404, got %d", recorder.Code)
	}

	recorder = serve(router, http.MethodGet, "/api/nowhere", nil)
	if recorder.Code != http.StatusNotFound || !strings.Contains(recorder.Body.String(), `"error":"not found"`) {
		t.Fatalf("expected JSON 404, got %d %s", recorder.Code, recorder.Body.String())
	}
}
