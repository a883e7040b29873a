package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
)

// ResourceHandler exposes admin CRUD for one flat backend resource. Bodies
// are forwarded as sent; the backend validates them.
type ResourceHandler[T any] struct {
	repo repository.ResourceRepository[T]
	name string
}

func NewResourceHandler[T any](repo repository.ResourceRepository[T], name string) *ResourceHandler[T] {
	return &ResourceHandler[T]{repo: repo, name: name}
}

// Register mounts list, get, create, update and delete under group.
func (h *ResourceHandler[T]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[T]) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T]) Get(c *gin.Context) {
	id, ok := resourceID(c, h.name)
	if !ok {
		return
	}

	item, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var payload models.JSONMap
	if !bindJSON(c, &payload) {
		return
	}

	item, err := h.repo.Create(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := resourceID(c, h.name)
	if !ok {
		return
	}

	var payload models.JSONMap
	if !bindJSON(c, &payload) {
		return
	}

	item, err := h.repo.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	id, ok := resourceID(c, h.name)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.name + " deleted successfully"})
}

func resourceID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " id"})
		return "", false
	}
	return id, true
}

// ProductHandler adds the image and document endpoints of products.
type ProductHandler struct {
	*ResourceHandler[models.Product]
	products repository.ProductRepository
}

func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{
		ResourceHandler: NewResourceHandler[models.Product](products, "product"),
		products:        products,
	}
}

func (h *ProductHandler) Register(group *gin.RouterGroup) {
	h.ResourceHandler.Register(group)
	group.POST("/:id/images", h.AddImage)
	group.POST("/:id/documents", h.AddDocument)
	group.DELETE("/:id/documents/:docId", h.DeleteDocument)
}

type productImageRequest struct {
	ImageURL string `json:"image_url" form:"image_url" binding:"required"`
}

func (h *ProductHandler) AddImage(c *gin.Context) {
	id, ok := resourceID(c, "product")
	if !ok {
		return
	}

	var req productImageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.products.AddImage(c.Request.Context(), id, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type productDocumentRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	URL     string `json:"url" form:"url" binding:"required"`
	DocType string `json:"doc_type" form:"doc_type"`
}

func (h *ProductHandler) AddDocument(c *gin.Context) {
	id, ok := resourceID(c, "product")
	if !ok {
		return
	}

	var req productDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docType := strings.TrimSpace(req.DocType)
	if docType == "" {
		docType = "document"
	}

	result, err := h.products.AddDocument(c.Request.Context(), id, models.ProductDocument{
		Name: strings.TrimSpace(req.Name),
		URL:  strings.TrimSpace(req.URL),
		Type: docType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) DeleteDocument(c *gin.Context) {
	id, ok := resourceID(c, "product")
	if !ok {
		return
	}
	docID := strings.TrimSpace(c.Param("docId"))
	if docID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	if err := h.products.DeleteDocument(c.Request.Context(), id, docID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted successfully"})
}

// GalleryHandler adds the category listing of the gallery.
type GalleryHandler struct {
	*ResourceHandler[models.GalleryItem]
	gallery repository.GalleryRepository
}

func NewGalleryHandler(gallery repository.GalleryRepository) *GalleryHandler {
	return &GalleryHandler{
		ResourceHandler: NewResourceHandler[models.GalleryItem](gallery, "gallery item"),
		gallery:         gallery,
	}
}

func (h *GalleryHandler) Register(group *gin.RouterGroup) {
	group.GET("/categories", h.Categories)
	h.ResourceHandler.Register(group)
}

func (h *GalleryHandler) Categories(c *gin.Context) {
	categories, err := h.gallery.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
