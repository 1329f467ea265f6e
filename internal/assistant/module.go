// Package assistant provides the chat assistant bounded context module.
package assistant

import (
	"corralon_backend/internal/assistant/agent"
	"corralon_backend/internal/assistant/handler"
	"corralon_backend/internal/assistant/service"
	apphttp "corralon_backend/internal/http"
	"corralon_backend/platform/config"
	"corralon_backend/platform/logger"
)

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler   *handler.Handler
	extractor service.IntentExtractor
}

// NewModule creates the assistant module. When a model API key is configured
// the extractor is model-backed; otherwise the local keyword extractor keeps
// the assistant functional.
func NewModule(cfg config.AIConfig, catalog handler.CatalogSearcher, log *logger.Logger) (*Module, error) {
	var extractor service.IntentExtractor
	if cfg.IsModelExtractorEnabled() {
		modelExtractor, err := agent.NewExtractor(agent.Config{
			APIKey:  cfg.GetOpenAIKey(),
			Model:   cfg.GetOpenAIModel(),
			BaseURL: cfg.GetOpenAIBaseURL(),
			Timeout: cfg.GetAITimeout(),
		}, log)
		if err != nil {
			return nil, err
		}
		extractor = modelExtractor
		log.Info("assistant using model-backed extractor", "model", cfg.GetOpenAIModel())
	} else {
		extractor = service.NewKeywordExtractor()
		log.Info("assistant using keyword extractor; no model API key configured")
	}

	return &Module{
		handler:   handler.New(extractor, catalog, log),
		extractor: extractor,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// Extractor returns the active intent extractor for other modules.
func (m *Module) Extractor() service.IntentExtractor {
	return m.extractor
}

// RegisterRoutes mounts assistant routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	chat := ctx.V1.Group("/chat")
	chat.POST("/message", m.handler.ProcessMessage)
	chat.POST("/analyze-image", m.handler.AnalyzeImage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
