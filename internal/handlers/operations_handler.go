package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"ellavera-site/internal/models"
	"ellavera-site/internal/seed"
	"ellavera-site/internal/service"
)

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Submit takes a contact lead as JSON.
func (h *LeadHandler) Submit(c *gin.Context) {
	var req models.ContactLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	lead, err := h.leadService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

type AIHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

type aiContentBody struct {
	Prompt      string `json:"prompt"`
	ContentType string `json:"content_type"`
}

func (h *AIHandler) GenerateContent(c *gin.Context) {
	var body aiContentBody
	if !bindJSON(c, &body) {
		return
	}

	response, err := h.aiService.GenerateContent(c.Request.Context(), models.AIContentRequest{
		Prompt:      body.Prompt,
		ContentType: body.ContentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AIHandler) GenerateImage(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if !bindJSON(c, &body) {
		return
	}

	response, err := h.aiService.GenerateImage(c.Request.Context(), models.AIImageRequest{Prompt: body.Prompt})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// SeedHandler creates the default sections of pages that have none.
type SeedHandler struct {
	store seed.SectionStore
}

func NewSeedHandler(store seed.SectionStore) *SeedHandler {
	return &SeedHandler{store: store}
}

func (h *SeedHandler) SeedAll(c *gin.Context) {
	results := seed.EnsureDefaultPages(c.Request.Context(), h.store)
	c.JSON(http.StatusOK, gin.H{"pages": results})
}

func (h *SeedHandler) SeedPage(c *gin.Context) {
	page := strings.ToLower(strings.TrimSpace(c.Param("page")))
	if !slices.Contains(seed.Pages(), page) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no default sections for page " + page})
		return
	}

	result, err := seed.EnsurePage(c.Request.Context(), h.store, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
