// Package knowledge provides the knowledge base bounded context module.
package knowledge

import (
	"corralon_backend/internal/knowledge/handler"
	"corralon_backend/internal/knowledge/repository"

	apphttp "corralon_backend/internal/http"
	"corralon_backend/platform/config"
)

// Module is the knowledge bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the knowledge module.
func NewModule(storage config.StorageConfig) (*Module, error) {
	repo, err := repository.NewFileRepository(storage.GetKnowledgeDir())
	if err != nil {
		return nil, err
	}
	return &Module{handler: handler.New(repo)}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "knowledge"
}

// RegisterRoutes mounts knowledge routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	kb := ctx.V1.Group("/knowledge")
	kb.GET("/list", m.handler.List)
	kb.POST("/add", m.handler.Add)
	kb.POST("/search", m.handler.Search)
	kb.GET("/categories", m.handler.Categories)
	kb.GET("/export", m.handler.Export)
	kb.GET("/:id", m.handler.Get)
	kb.PUT("/:id", m.handler.Update)
	kb.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
