package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sections"
	"ellavera-site/internal/sitestate"
)

type fakeResources[T any] struct {
	mu      sync.Mutex
	items   []T
	err     error
	queries []url.Values
}

func (f *fakeResources[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return append([]T(nil), f.items...), nil
}

func (f *fakeResources[T]) Get(ctx context.Context, id string) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) == 0 {
		return nil, repository.ErrNotFound
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeResources[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeResources[T]) Update(ctx context.Context, id string, payload interface{}) (*T, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeResources[T]) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

type fakeProducts struct {
	fakeResources[models.Product]
}

func (f *fakeProducts) AddImage(ctx context.Context, productID, imageURL string) (models.JSONMap, error) {
	return nil, nil
}

func (f *fakeProducts) AddDocument(ctx context.Context, productID string, document models.ProductDocument) (models.JSONMap, error) {
	return nil, nil
}

func (f *fakeProducts) DeleteDocument(ctx context.Context, productID, documentID string) error {
	return nil
}

type fakeSections struct {
	list []models.PageSection
	err  error
}

func (f *fakeSections) ListSections(ctx context.Context, pageName string) ([]models.PageSection, error) {
	return f.list, f.err
}

func (f *fakeSections) CreateSection(ctx context.Context, req models.PageSectionRequest) (*models.PageSection, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSections) UpdateSection(ctx context.Context, id string, req models.PageSectionRequest) (*models.PageSection, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSections) DeleteSection(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func newPageService(sectionList []models.PageSection) (*PageService, *fakeProducts, *fakeResources[models.Client], *fakeResources[models.Review]) {
	products := &fakeProducts{}
	products.items = []models.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	clients := &fakeResources[models.Client]{items: []models.Client{{ID: "c1"}}}
	reviews := &fakeResources[models.Review]{items: []models.Review{{ID: "r1"}}}
	svc := NewPageService(&fakeSections{list: sectionList}, products, clients, reviews)
	return svc, products, clients, reviews
}

func TestPageServiceLoadsHome(t *testing.T) {
	svc, products, _, _ := newPageService([]models.PageSection{
		{ID: "b", SectionType: sections.TypeCTA, Order: 2, Visible: true},
		{ID: "a", SectionType: sections.TypeHero, Order: 1, Visible: true},
		{ID: "h", SectionType: sections.TypeClients, Order: 3, Visible: false},
	})

	view, err := svc.Load(context.Background(), PageHome)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(view.Data.Products) != 3 {
		t.Fatalf("expected featured products limited to 3, got %d", len(view.Data.Products))
	}
	if products.queries[0].Get("featured") != "true" {
		t.Fatalf("expected featured filter, got %v", products.queries[0])
	}

	var types []string
	for _, section := range view.Sections {
		types = append(types, section.SectionType)
	}
	if strings.Join(types, ",") != "hero,cta,products,reviews" {
		t.Fatalf("unexpected section order %v", types)
	}
	if view.Sections[2].Order != 4 {
		t.Fatalf("expected implicit listings after stored sections, got order %d", view.Sections[2].Order)
	}
}

func TestPageServiceFailsWholePage(t *testing.T) {
	svc, _, _, reviews := newPageService(nil)
	reviews.err = errors.New("backend down")

	if _, err := svc.Load(context.Background(), PageHome); err == nil {
		t.Fatalf("expected home to fail when a related fetch fails")
	}

	view, err := svc.Load(context.Background(), PageAbout)
	if err != nil {
		t.Fatalf("expected about page to skip unused fetches, got %v", err)
	}
	if view.Data.Reviews != nil {
		t.Fatalf("expected no reviews on about page")
	}
}

type fakeSettingsRepo struct {
	current   models.SiteSettings
	getErr    error
	updateErr error
	gets      int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (models.SiteSettings, error) {
	f.gets++
	return f.current, f.getErr
}

func (f *fakeSettingsRepo) Update(ctx context.Context, update models.SiteSettingsUpdate) (models.SiteSettings, error) {
	if f.updateErr != nil {
		return models.SiteSettings{}, f.updateErr
	}
	if update.SiteName != nil {
		f.current.SiteName = *update.SiteName
	}
	return f.current, nil
}

type fakeThemeRepo struct {
	current models.Theme
	err     error
}

func (f *fakeThemeRepo) Get(ctx context.Context) (models.Theme, error) {
	return f.current, f.err
}

func (f *fakeThemeRepo) Update(ctx context.Context, update models.ThemeUpdate) (models.Theme, error) {
	if update.PrimaryColor != nil {
		f.current.PrimaryColor = *update.PrimaryColor
	}
	if update.ThemeMode != nil {
		f.current.ThemeMode = *update.ThemeMode
	}
	return f.current, nil
}

func strPtr(s string) *string { return &s }

func TestSiteServiceSettingsLifecycle(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{getErr: errors.New("offline")}
	themeRepo := &fakeThemeRepo{err: errors.New("offline")}
	svc := NewSiteService(settingsRepo, themeRepo)

	svc.Load(context.Background())
	if svc.Settings() != nil || svc.SettingsState() != sitestate.StateError {
		t.Fatalf("expected settings to be unavailable after a failed load")
	}
	if svc.Theme().Current().PrimaryColor != "#06b6d4" {
		t.Fatalf("expected default theme after a failed load")
	}

	var notified []string
	svc.SubscribeSettings(func(s models.SiteSettings) { notified = append(notified, s.SiteName) })

	settingsRepo.getErr = nil
	saved, err := svc.UpdateSettings(context.Background(), models.SiteSettingsUpdate{SiteName: strPtr("Glow")})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if saved.SiteName != "Glow" || svc.Settings().SiteName != "Glow" {
		t.Fatalf("expected refreshed settings, got %+v", saved)
	}
	if strings.Join(notified, ",") != "Glow" {
		t.Fatalf("expected one notification, got %v", notified)
	}

	settingsRepo.updateErr = errors.New("rejected")
	gets := settingsRepo.gets
	if _, err := svc.UpdateSettings(context.Background(), models.SiteSettingsUpdate{SiteName: strPtr("Other")}); err == nil {
		t.Fatalf("expected failed write to be reported")
	}
	if settingsRepo.gets != gets || svc.Settings().SiteName != "Glow" {
		t.Fatalf("expected no refresh after a failed write")
	}

	if _, err := svc.UpdateSettings(context.Background(), models.SiteSettingsUpdate{ContactEmail: strPtr("not-an-email")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSiteServiceThemeUpdate(t *testing.T) {
	svc := NewSiteService(&fakeSettingsRepo{}, &fakeThemeRepo{current: sitestate.DefaultTheme()})

	if _, err := svc.UpdateTheme(context.Background(), models.ThemeUpdate{PrimaryColor: strPtr("pink")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected colour validation error, got %v", err)
	}

	theme, err := svc.UpdateTheme(context.Background(), models.ThemeUpdate{PrimaryColor: strPtr("#123456"), ThemeMode: strPtr(" Dark ")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if theme.ThemeMode != "dark" || !svc.Theme().Dark() {
		t.Fatalf("expected dark theme, got %+v", theme)
	}
	if !strings.Contains(svc.Theme().Style(), "--primary: #123456;") {
		t.Fatalf("expected style to follow the saved theme: %s", svc.Theme().Style())
	}
}

type fakeLeads struct {
	submitted []models.ContactLeadRequest
}

func (f *fakeLeads) Submit(ctx context.Context, lead models.ContactLeadRequest) (*models.ContactLead, error) {
	f.submitted = append(f.submitted, lead)
	return &models.ContactLead{ID: "lead-1", Name: lead.Name}, nil
}

func (f *fakeLeads) List(ctx context.Context) ([]models.ContactLead, error) {
	return nil, nil
}

func TestLeadServiceValidation(t *testing.T) {
	leads := &fakeLeads{}
	svc := NewLeadService(leads)

	tests := []struct {
		name string
		req  models.ContactLeadRequest
		ok   bool
	}{
		{name: "valid", req: models.ContactLeadRequest{Name: " Ana ", Email: "ana@example.com", Message: "Hello"}, ok: true},
		{name: "missing name", req: models.ContactLeadRequest{Email: "ana@example.com", Message: "Hello"}},
		{name: "bad email", req: models.ContactLeadRequest{Name: "Ana", Email: "ana@", Message: "Hello"}},
		{name: "blank message", req: models.ContactLeadRequest{Name: "Ana", Email: "ana@example.com", Message: "   "}},
		{name: "html name", req: models.ContactLeadRequest{Name: "<b>Ana</b>", Email: "ana@example.com", Message: "Hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(leads.submitted)
			_, err := svc.Submit(context.Background(), tt.req)
			if tt.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected invalid input, got %v", err)
				}
				if len(leads.submitted) != before {
					t.Fatalf("expected nothing to be forwarded")
				}
			}
		})
	}

	if leads.submitted[0].Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", leads.submitted[0].Name)
	}
}

type fakeUploads struct {
	last repository.MultipartFile
	data []byte
}

func (f *fakeUploads) UploadImage(ctx context.Context, file repository.MultipartFile) (*models.UploadResult, error) {
	return f.record(file)
}

func (f *fakeUploads) UploadFile(ctx context.Context, file repository.MultipartFile) (*models.UploadResult, error) {
	return f.record(file)
}

func (f *fakeUploads) record(file repository.MultipartFile) (*models.UploadResult, error) {
	f.last = file
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(file.Content)
	f.data = buf.Bytes()
	return &models.UploadResult{Success: true, Filename: file.Filename, Size: int64(buf.Len())}, nil
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write content: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(10 << 20); err != nil {
		t.Fatalf("failed to parse form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestUploadServiceChecksBeforeForwarding(t *testing.T) {
	uploads := &fakeUploads{}
	svc := NewUploadService(uploads, 5*1024*1024)
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("rest")...)

	result, err := svc.UploadImage(context.Background(), multipartHeader(t, "my logo.png", png))
	if err != nil {
		t.Fatalf("expected png upload to succeed, got %v", err)
	}
	if uploads.last.ContentType != "image/png" || result.Filename != "my_logo.png" {
		t.Fatalf("unexpected forwarded file %+v", uploads.last)
	}

	if _, err := svc.UploadImage(context.Background(), multipartHeader(t, "fake.png", []byte("plain text"))); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected content mismatch to be rejected, got %v", err)
	}
	if _, err := svc.UploadImage(context.Background(), multipartHeader(t, "doc.pdf", []byte("%PDF-1.4"))); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected pdf to be rejected as image, got %v", err)
	}

	large := append(append([]byte{}, png...), bytes.Repeat([]byte{0}, maxImageSize)...)
	if _, err := svc.UploadImage(context.Background(), multipartHeader(t, "big.png", large)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected oversized image to be rejected, got %v", err)
	}

	if _, err := svc.UploadFile(context.Background(), multipartHeader(t, "spec.pdf", []byte("%PDF-1.4 body"))); err != nil {
		t.Fatalf("expected pdf document to be accepted, got %v", err)
	}
	if _, err := svc.UploadFile(context.Background(), multipartHeader(t, "run.exe", []byte("MZ"))); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected executable to be rejected, got %v", err)
	}
}

func TestUploadFileChecksSniffedContent(t *testing.T) {
	uploads := &fakeUploads{}
	svc := NewUploadService(uploads, 5*1024*1024)

	mp4 := []byte{0x00, 0x00, 0x00, 0x18, 0x66, 0x74, 0x79, 0x70, 0x69, 0x73, 0x6F, 0x6D, 0x00, 0x00}
	if _, err := svc.UploadFile(context.Background(), multipartHeader(t, "hero.mp4", mp4)); err != nil {
		t.Fatalf("expected hero video to be accepted, got %v", err)
	}
	if uploads.last.ContentType != "video/mp4" {
		t.Fatalf("expected sniffed video type to be forwarded, got %q", uploads.last.ContentType)
	}

	if _, err := svc.UploadFile(context.Background(), multipartHeader(t, "sheet.csv", []byte("name,price\nserum,10\n"))); err != nil {
		t.Fatalf("expected text document to be accepted, got %v", err)
	}

	binary := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
	if _, err := svc.UploadFile(context.Background(), multipartHeader(t, "report.pdf", binary)); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected unknown binary content to be rejected, got %v", err)
	}
}

func TestContentServiceRendersSafeMarkdown(t *testing.T) {
	svc := NewContentService(nil, nil, nil, nil, nil, nil)
	out := svc.RenderMarkdown("# Title\n\nSome **bold** text<script>alert(1)</script>\n\n[x](javascript:alert(1))")
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected markdown to render, got %s", out)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "javascript:") {
		t.Fatalf("expected unsafe markup to be removed, got %s", out)
	}
}

func TestContentServiceHidesUnpublishedArticles(t *testing.T) {
	articles := &fakeResources[models.Article]{items: []models.Article{{ID: "a1", Published: false}}}
	svc := NewContentService(nil, nil, articles, nil, nil, nil)

	if _, err := svc.Article(context.Background(), "a1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected unpublished article to be hidden, got %v", err)
	}

	if _, err := svc.PublishedArticles(context.Background(), ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if articles.queries[0].Get("published") != "true" {
		t.Fatalf("expected published filter, got %v", articles.queries[0])
	}
}

func TestAuthServiceInspectToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(nil)
	svc.now = func() time.Time { return now }

	sign := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})
		signed, err := token.SignedString([]byte("backend-secret"))
		if err != nil {
			t.Fatalf("failed to sign: %v", err)
		}
		return signed
	}

	info, err := svc.InspectToken(sign(now.Add(time.Hour)))
	if err != nil || info.Subject != "user-1" || !info.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected token info %+v %v", info, err)
	}

	if _, err := svc.InspectToken(sign(now.Add(-time.Minute))); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if _, err := svc.InspectToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected malformed token to be rejected, got %v", err)
	}
}

func TestBackupServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewBackupService(nil)
	if _, err := svc.Download(context.Background(), "xml", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid format, got %v", err)
	}
}
