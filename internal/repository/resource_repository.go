package repository

import (
	"context"
	"net/url"

	"ellavera-site/internal/models"
)

// ResourceRepository is the CRUD surface shared by the flat catalogue
// resources: categories, products, articles, clients, reviews, services and
// gallery items.
type ResourceRepository[T any] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload interface{}) (*T, error)
	Update(ctx context.Context, id string, payload interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}

type resourceRepository[T any] struct {
	client *Client
	path   string
}

func NewResourceRepository[T any](client *Client, path string) ResourceRepository[T] {
	return &resourceRepository[T]{client: client, path: path}
}

func NewCategoryRepository(client *Client) ResourceRepository[models.Category] {
	return NewResourceRepository[models.Category](client, "/categories")
}

func NewArticleRepository(client *Client) ResourceRepository[models.Article] {
	return NewResourceRepository[models.Article](client, "/articles")
}

func NewClientRepository(client *Client) ResourceRepository[models.Client] {
	return NewResourceRepository[models.Client](client, "/clients")
}

func NewReviewRepository(client *Client) ResourceRepository[models.Review] {
	return NewResourceRepository[models.Review](client, "/reviews")
}

func NewServiceRepository(client *Client) ResourceRepository[models.Service] {
	return NewResourceRepository[models.Service](client, "/services")
}

func (r *resourceRepository[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var items []T
	if err := r.client.get(ctx, r.path, query, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *resourceRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.get(ctx, r.path+"/"+escapeID(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *resourceRepository[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	var item T
	if err := r.client.post(ctx, r.path, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *resourceRepository[T]) Update(ctx context.Context, id string, payload interface{}) (*T, error) {
	var item T
	if err := r.client.put(ctx, r.path+"/"+escapeID(id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *resourceRepository[T]) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, r.path+"/"+escapeID(id))
}

type ProductRepository interface {
	ResourceRepository[models.Product]
	AddImage(ctx context.Context, productID, imageURL string) (models.JSONMap, error)
	AddDocument(ctx context.Context, productID string, document models.ProductDocument) (models.JSONMap, error)
	DeleteDocument(ctx context.Context, productID, documentID string) error
}

type productRepository struct {
	ResourceRepository[models.Product]
	client *Client
}

func NewProductRepository(client *Client) ProductRepository {
	return &productRepository{
		ResourceRepository: NewResourceRepository[models.Product](client, "/products"),
		client:             client,
	}
}

func (r *productRepository) AddImage(ctx context.Context, productID, imageURL string) (models.JSONMap, error) {
	var result models.JSONMap
	err := r.client.postMultipart(ctx, "/products/"+escapeID(productID)+"/images",
		map[string]string{"image_url": imageURL}, nil, &result)
	return result, err
}

func (r *productRepository) AddDocument(ctx context.Context, productID string, document models.ProductDocument) (models.JSONMap, error) {
	var result models.JSONMap
	err := r.client.postMultipart(ctx, "/products/"+escapeID(productID)+"/documents", map[string]string{
		"name":     document.Name,
		"url":      document.URL,
		"doc_type": document.Type,
	}, nil, &result)
	return result, err
}

func (r *productRepository) DeleteDocument(ctx context.Context, productID, documentID string) error {
	return r.client.delete(ctx, "/products/"+escapeID(productID)+"/documents/"+escapeID(documentID))
}

type GalleryRepository interface {
	ResourceRepository[models.GalleryItem]
	Categories(ctx context.Context) ([]string, error)
}

type galleryRepository struct {
	ResourceRepository[models.GalleryItem]
	client *Client
}

func NewGalleryRepository(client *Client) GalleryRepository {
	return &galleryRepository{
		ResourceRepository: NewResourceRepository[models.GalleryItem](client, "/gallery"),
		client:             client,
	}
}

func (r *galleryRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.client.get(ctx, "/gallery/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
