// Package budgets provides the budget bounded context module.
package budgets

import (
	"corralon_backend/internal/budgets/handler"
	"corralon_backend/internal/budgets/repository"
	"corralon_backend/internal/budgets/service"
	apphttp "corralon_backend/internal/http"
	"corralon_backend/internal/pdf"
	"corralon_backend/platform/config"

	"github.com/bwmarrin/snowflake"
)

// Module is the budgets bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the budgets module.
func NewModule(summarizer service.Summarizer, node *snowflake.Node, company config.CompanyConfig, storage config.StorageConfig) (*Module, error) {
	repo, err := repository.NewFileRepository(storage.GetBudgetsDir())
	if err != nil {
		return nil, err
	}

	renderer := pdf.NewRenderer(pdf.CompanyInfo{
		Name:        company.GetCompanyName(),
		Description: company.GetCompanyDescription(),
		Phone:       company.GetCompanyPhone(),
		Terms:       company.GetPDFTerms(),
		Contact:     company.GetPDFContact(),
	})

	svc := service.New(summarizer, node)
	h := handler.New(svc, repo, renderer)

	return &Module{
		handler: h,
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "budgets"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts budget routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	budget := ctx.V1.Group("/budget")
	budget.POST("/generate", m.handler.Generate)
	budget.POST("/generate-pdf", m.handler.GeneratePDF)
	budget.POST("/quick-pdf", m.handler.QuickPDF)
	budget.POST("/save", m.handler.Save)
	budget.GET("/list", m.handler.List)
	budget.GET("/:id", m.handler.Get)

	ctx.V1.POST("/chat/generate-budget", m.handler.ChatGenerate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
