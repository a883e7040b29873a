package service

import (
	"bytes"
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
)

// ContentService serves the flat catalogue to the public list and detail
// pages.
type ContentService struct {
	categories repository.ResourceRepository[models.Category]
	products   repository.ProductRepository
	articles   repository.ResourceRepository[models.Article]
	clients    repository.ResourceRepository[models.Client]
	services   repository.ResourceRepository[models.Service]
	gallery    repository.GalleryRepository

	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewContentService(
	categoryRepo repository.ResourceRepository[models.Category],
	productRepo repository.ProductRepository,
	articleRepo repository.ResourceRepository[models.Article],
	clientRepo repository.ResourceRepository[models.Client],
	serviceRepo repository.ResourceRepository[models.Service],
	galleryRepo repository.GalleryRepository,
) *ContentService {
	return &ContentService{
		categories: categoryRepo,
		products:   productRepo,
		articles:   articleRepo,
		clients:    clientRepo,
		services:   serviceRepo,
		gallery:    galleryRepo,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// ProductCatalog is the products page: categories for the filter bar and the
// products of the selected category.
type ProductCatalog struct {
	Categories []models.Category
	Products   []models.Product
	CategoryID string
}

func (s *ContentService) ProductCatalog(ctx context.Context, categoryID string) (*ProductCatalog, error) {
	categories, err := s.categories.List(ctx, url.Values{"type": {"product"}})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if categoryID = strings.TrimSpace(categoryID); categoryID != "" {
		query.Set("category_id", categoryID)
	}
	products, err := s.products.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &ProductCatalog{Categories: categories, Products: products, CategoryID: categoryID}, nil
}

func (s *ContentService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// PublishedArticles lists published articles, optionally of one category.
func (s *ContentService) PublishedArticles(ctx context.Context, category string) ([]models.Article, error) {
	query := url.Values{"published": {"true"}}
	if category = strings.TrimSpace(category); category != "" {
		query.Set("category", category)
	}
	return s.articles.List(ctx, query)
}

// ArticleView is an article with its body rendered to safe HTML.
type ArticleView struct {
	Article models.Article
	Body    string
}

// Article returns a published article. Unpublished articles are reported as
// not found to public readers.
func (s *ContentService) Article(ctx context.Context, id string) (*ArticleView, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.Published {
		return nil, repository.ErrNotFound
	}
	return &ArticleView{Article: *article, Body: s.RenderMarkdown(article.Content)}, nil
}

// RenderMarkdown converts article markdown to HTML and sanitises the result.
// Bodies written in HTML pass through the sanitiser unchanged in structure.
func (s *ContentService) RenderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return s.policy.Sanitize(source)
	}
	return s.policy.Sanitize(buf.String())
}

// Services lists services in display order.
func (s *ContentService) Services(ctx context.Context) ([]models.Service, error) {
	services, err := s.services.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(services, func(i, j int) bool { return services[i].Order < services[j].Order })
	return services, nil
}

func (s *ContentService) Service(ctx context.Context, id string) (*models.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *ContentService) Clients(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx, nil)
}

// GalleryView is the gallery page: categories and the items of the selected one.
type GalleryView struct {
	Categories []string
	Items      []models.GalleryItem
	Category   string
}

func (s *ContentService) Gallery(ctx context.Context, category string) (*GalleryView, error) {
	categories, err := s.gallery.Categories(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if category = strings.TrimSpace(category); category != "" {
		query.Set("category", category)
	}
	items, err := s.gallery.List(ctx, query)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	return &GalleryView{Categories: categories, Items: items, Category: category}, nil
}
