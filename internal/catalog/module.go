// Package catalog provides the catalog bounded context module.
package catalog

import (
	"corralon_backend/internal/catalog/cache"
	"corralon_backend/internal/catalog/handler"
	"corralon_backend/internal/catalog/service"
	"corralon_backend/internal/catalog/upstream"
	apphttp "corralon_backend/internal/http"
	"corralon_backend/platform/config"
	"corralon_backend/platform/logger"
	"corralon_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	gateway *service.Gateway
}

// NewModule creates and initializes the catalog module.
func NewModule(cfg config.CatalogConfig, store cache.SnapshotStore, val *validator.Validator, log *logger.Logger) *Module {
	client := upstream.NewClient(cfg.GetCatalogBaseURL())
	gateway := service.NewGateway(client, store, cfg.GetCatalogCacheTTL(), cfg.IsMockDataEnabled(), log)
	svc := service.New(gateway)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		gateway: gateway,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Gateway returns the snapshot gateway for direct access if needed.
func (m *Module) Gateway() *service.Gateway {
	return m.gateway
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	chat := ctx.V1.Group("/chat")
	chat.POST("/search-products", m.handler.SearchProducts)
	chat.POST("/search-clients", m.handler.SearchClients)
	chat.GET("/product/:codigo", m.handler.GetProduct)
	chat.GET("/societies", m.handler.GetSocieties)
	chat.GET("/price-lists/:codigoObra", m.handler.GetPriceLists)
	chat.POST("/clear-cache", m.handler.ClearCache)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
