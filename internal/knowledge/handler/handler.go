package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"corralon_backend/internal/knowledge/repository"
	"corralon_backend/internal/knowledge/transport"
	"corralon_backend/platform/httpkit"
)

const (
	msgTitleContentRequired = "título y contenido son requeridos"
	msgItemAdded            = "conocimiento agregado exitosamente"
	msgItemUpdated          = "conocimiento actualizado exitosamente"
	msgItemDeleted          = "conocimiento eliminado exitosamente"
)

var categories = []transport.Category{
	{ID: "empresa", Name: "Información de Empresa"},
	{ID: "productos", Name: "Productos y Materiales"},
	{ID: "politicas", Name: "Políticas y Procedimientos"},
	{ID: "precios", Name: "Precios y Descuentos"},
	{ID: "otros", Name: "Otros"},
}

// Handler handles HTTP requests for the knowledge base.
type Handler struct {
	repo *repository.FileRepository
}

// New creates a new knowledge handler.
func New(repo *repository.FileRepository) *Handler {
	return &Handler{repo: repo}
}

// List returns every stored entry, newest first.
// GET /api/v1/knowledge/list
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ListResponse{Knowledge: items})
}

// Add stores a new entry.
// POST /api/v1/knowledge/add
func (h *Handler) Add(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgTitleContentRequired, nil)
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		httpkit.Error(c, http.StatusBadRequest, msgTitleContentRequired, nil)
		return
	}

	item, err := h.repo.Add(title, content, req.Category)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ItemResponse{Message: msgItemAdded, Knowledge: item})
}

// Get returns one entry by id.
// GET /api/v1/knowledge/:id
func (h *Handler) Get(c *gin.Context) {
	item, err := h.repo.Get(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ItemResponse{Knowledge: item})
}

// Update applies partial changes to an entry.
// PUT /api/v1/knowledge/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "datos de actualización inválidos", nil)
		return
	}

	item, err := h.repo.Update(c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ItemResponse{Message: msgItemUpdated, Knowledge: item})
}

// Delete removes an entry.
// DELETE /api/v1/knowledge/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": msgItemDeleted})
}

// Search matches entries by title and content.
// POST /api/v1/knowledge/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.OK(c, transport.SearchResponse{Results: []transport.SearchResult{}})
		return
	}

	results, err := h.repo.Search(req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SearchResponse{Results: results})
}

// Categories returns the available knowledge categories.
// GET /api/v1/knowledge/categories
func (h *Handler) Categories(c *gin.Context) {
	httpkit.OK(c, transport.CategoriesResponse{Categories: categories})
}

// Export dumps the full knowledge base.
// GET /api/v1/knowledge/export
func (h *Handler) Export(c *gin.Context) {
	items, err := h.repo.All()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ExportResponse{
		KnowledgeBase: items,
		ExportedAt:    time.Now(),
		TotalItems:    len(items),
	})
}
