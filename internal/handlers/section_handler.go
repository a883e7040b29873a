package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"ellavera-site/internal/editor"
	"ellavera-site/internal/sections"
)

// EditorHandler is the JSON API of the admin page editor. Every edit is
// staged in a session; only save, visibility, create, delete and reorder
// reach the backend.
type EditorHandler struct {
	manager   *editor.Manager
	registry  *sections.Registry
	sanitizer *bluemonday.Policy
}

func NewEditorHandler(manager *editor.Manager, registry *sections.Registry) *EditorHandler {
	return &EditorHandler{manager: manager, registry: registry, sanitizer: newSectionPolicy()}
}

// Register mounts the editor routes under group.
func (h *EditorHandler) Register(group *gin.RouterGroup) {
	group.GET("/sections/available", h.GetAvailableSections)

	sessions := group.Group("/editor/sessions")
	sessions.POST("", h.Open)
	sessions.GET("/:session", h.Get)
	sessions.DELETE("/:session", h.Discard)
	sessions.PUT("/:session/order", h.Reorder)
	sessions.POST("/:session/sections", h.CreateSection)

	section := sessions.Group("/:session/sections/:key")
	section.GET("/form", h.Form)
	section.GET("/preview", h.Preview)
	section.PATCH("/fields", h.SetField)
	section.PUT("/lines", h.SetLines)
	section.PATCH("/attributes", h.SetAttributes)
	section.POST("/items", h.AddItem)
	section.DELETE("/items/:list/:index", h.RemoveItem)
	section.PUT("/raw", h.ApplyRaw)
	section.POST("/save", h.Save)
	section.POST("/visibility", h.ToggleVisibility)
	section.DELETE("", h.DeleteSection)
}

// GetAvailableSections returns metadata for all registered section types.
// GET /api/admin/sections/available
func (h *EditorHandler) GetAvailableSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sections":     h.registry.ListMetadata(),
		"has_metadata": true,
	})
}

type openSessionRequest struct {
	PageName string `json:"page_name" binding:"required"`
}

func (h *EditorHandler) Open(c *gin.Context) {
	var req openSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.manager.Open(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.PageName)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *EditorHandler) Get(c *gin.Context) {
	session, err := h.manager.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *EditorHandler) Discard(c *gin.Context) {
	if err := h.manager.Discard(c.Request.Context(), c.Param("session")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session discarded"})
}

func (h *EditorHandler) Form(c *gin.Context) {
	form, err := h.manager.Form(c.Request.Context(), c.Param("session"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Preview renders the staged section the way the public page would,
// regardless of its visibility.
func (h *EditorHandler) Preview(c *gin.Context) {
	session, err := h.manager.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}
	entry, ok := session.Entry(c.Param("key"))
	if !ok {
		respondError(c, editor.ErrSectionNotFound)
		return
	}

	ctx := sections.NewRenderContext(h.sanitizer.Sanitize, sections.PageData{})
	html := sections.RenderSection(h.registry, ctx, "page", entry.Section)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type setFieldRequest struct {
	Path  string      `json:"path" binding:"required"`
	Value interface{} `json:"value"`
}

func (h *EditorHandler) SetField(c *gin.Context) {
	var req setFieldRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.manager.SetField(c.Request.Context(), c.Param("session"), c.Param("key"), req.Path, req.Value)
	h.respondEntry(c, entry, err)
}

type setLinesRequest struct {
	Field string `json:"field" binding:"required"`
	Text  string `json:"text"`
}

func (h *EditorHandler) SetLines(c *gin.Context) {
	var req setLinesRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.manager.SetLines(c.Request.Context(), c.Param("session"), c.Param("key"), req.Field, req.Text)
	h.respondEntry(c, entry, err)
}

func (h *EditorHandler) SetAttributes(c *gin.Context) {
	var attrs editor.Attributes
	if !bindJSON(c, &attrs) {
		return
	}

	entry, err := h.manager.SetAttributes(c.Request.Context(), c.Param("session"), c.Param("key"), attrs)
	h.respondEntry(c, entry, err)
}

type addItemRequest struct {
	List string `json:"list" binding:"required"`
}

func (h *EditorHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.manager.AddItem(c.Request.Context(), c.Param("session"), c.Param("key"), req.List)
	h.respondEntry(c, entry, err)
}

func (h *EditorHandler) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}

	entry, err := h.manager.RemoveItem(c.Request.Context(), c.Param("session"), c.Param("key"), c.Param("list"), index)
	h.respondEntry(c, entry, err)
}

type applyRawRequest struct {
	Text string `json:"text"`
}

// ApplyRaw stages raw JSON content. Text that does not parse is kept for
// the operator to fix and reported with applied=false, not as an error.
func (h *EditorHandler) ApplyRaw(c *gin.Context) {
	var req applyRawRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, applied, err := h.manager.ApplyRaw(c.Request.Context(), c.Param("session"), c.Param("key"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "applied": applied})
}

func (h *EditorHandler) Save(c *gin.Context) {
	entry, err := h.manager.Save(c.Request.Context(), c.Param("session"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "message": "Section saved successfully"})
}

func (h *EditorHandler) ToggleVisibility(c *gin.Context) {
	entry, err := h.manager.ToggleVisibility(c.Request.Context(), c.Param("session"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Section hidden"
	if entry.Section.Visible {
		message = "Section shown"
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "message": message})
}

type createSectionRequest struct {
	SectionType string `json:"section_type" binding:"required"`
	SectionName string `json:"section_name"`
}

func (h *EditorHandler) CreateSection(c *gin.Context) {
	var req createSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.manager.CreateSection(c.Request.Context(), c.Param("session"), req.SectionType, strings.TrimSpace(req.SectionName))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *EditorHandler) DeleteSection(c *gin.Context) {
	if err := h.manager.DeleteSection(c.Request.Context(), c.Param("session"), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}

type reorderRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

func (h *EditorHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.manager.ReorderSections(c.Request.Context(), c.Param("session"), req.Keys)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *EditorHandler) respondEntry(c *gin.Context, entry editor.Entry, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// newSectionPolicy is the sanitiser of rich text inside sections.
func newSectionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()
	policy.AllowAttrs("style").OnElements("span", "div", "p")
	return policy
}
