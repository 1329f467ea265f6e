package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"corralon_backend/internal/catalog/service"
	"corralon_backend/internal/catalog/transport"
	"corralon_backend/platform/httpkit"
	"corralon_backend/platform/validator"
)

// Handler handles HTTP requests for catalog lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgQueryRequired   = "query de búsqueda requerido"
	msgProductNotFound = "producto no encontrado"
	msgCacheCleared    = "cache limpiado exitosamente"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SearchProducts searches articles by name or code.
// POST /api/v1/chat/search-products
func (h *Handler) SearchProducts(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryRequired, nil)
		return
	}

	products, err := h.svc.SearchArticles(c.Request.Context(), req.Query, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SearchProductsResponse{Products: products, Total: len(products)})
}

// SearchClients searches clients and sites by name or CUIT.
// POST /api/v1/chat/search-clients
func (h *Handler) SearchClients(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryRequired, nil)
		return
	}

	clients, err := h.svc.SearchClients(c.Request.Context(), req.Query, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SearchClientsResponse{Clients: clients, Total: len(clients)})
}

// GetProduct returns one article by its exact code.
// GET /api/v1/chat/product/:codigo
func (h *Handler) GetProduct(c *gin.Context) {
	code := c.Param("codigo")

	product, found, err := h.svc.GetArticleByCode(c.Request.Context(), code)
	if httpkit.HandleError(c, err) {
		return
	}
	if !found {
		httpkit.Error(c, http.StatusNotFound, msgProductNotFound, nil)
		return
	}
	httpkit.OK(c, transport.ProductResponse{Product: product})
}

// GetSocieties lists all societies.
// GET /api/v1/chat/societies
func (h *Handler) GetSocieties(c *gin.Context) {
	societies, err := h.svc.Societies(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SocietiesResponse{Societies: societies})
}

// GetPriceLists lists the price lists of a site.
// GET /api/v1/chat/price-lists/:codigoObra
func (h *Handler) GetPriceLists(c *gin.Context) {
	siteCode := c.Param("codigoObra")

	lists, err := h.svc.GetPriceListsForSite(c.Request.Context(), siteCode)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PriceListsResponse{PriceLists: lists})
}

// ClearCache drops all cached catalog snapshots.
// POST /api/v1/chat/clear-cache
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.svc.Gateway().ClearCache(c.Request.Context()); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": msgCacheCleared})
}
