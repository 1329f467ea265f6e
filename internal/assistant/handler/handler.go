package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"corralon_backend/internal/assistant/service"
	"corralon_backend/internal/assistant/transport"
	catalogtransport "corralon_backend/internal/catalog/transport"
	"corralon_backend/platform/httpkit"
	"corralon_backend/platform/logger"
)

const (
	maxChatResults    = 10
	clientSearchLimit = 20

	msgMessageOrFilesRequired = "mensaje o archivos requeridos"
	msgImageDataRequired      = "datos de imagen requeridos"
)

// CatalogSearcher is the catalog lookup surface the chat flow needs.
type CatalogSearcher interface {
	SearchArticles(ctx context.Context, query string, limit int) ([]catalogtransport.Article, error)
	SearchClients(ctx context.Context, query string, limit int) ([]catalogtransport.ClientSearchResult, error)
}

// Handler handles HTTP requests for the chat assistant.
type Handler struct {
	extractor service.IntentExtractor
	catalog   CatalogSearcher
	log       *logger.Logger
}

// New creates a new assistant handler.
func New(extractor service.IntentExtractor, catalog CatalogSearcher, log *logger.Logger) *Handler {
	return &Handler{extractor: extractor, catalog: catalog, log: log}
}

// ProcessMessage runs the intent extractor over an incoming chat message
// and enriches the answer with product and client lookups when suggested.
// POST /api/v1/chat/message
func (h *Handler) ProcessMessage(c *gin.Context) {
	var req transport.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMessageOrFilesRequired, nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" && len(req.Files) == 0 {
		httpkit.Error(c, http.StatusBadRequest, msgMessageOrFilesRequired, nil)
		return
	}

	ctx := c.Request.Context()
	message := req.Message

	// Audio attachments are transcribed and appended to the message text.
	images := make([]service.FileAttachment, 0, len(req.Files))
	for _, file := range req.Files {
		switch file.Type {
		case "image":
			images = append(images, file)
		case "audio":
			audio, err := base64.StdEncoding.DecodeString(file.Data)
			if err != nil {
				continue
			}
			if transcript := h.extractor.TranscribeAudio(ctx, audio); transcript != "" {
				message += " [Audio transcrito: " + transcript + "]"
			}
		}
	}

	result := h.extractor.ExtractIntent(ctx, message, req.History, images)

	products := make([]catalogtransport.Article, 0)
	if result.NeedsProductSearch {
		found, err := h.catalog.SearchArticles(ctx, message, 0)
		if err != nil {
			h.log.Warn("product search during chat failed", "error", err)
		} else {
			products = capArticles(found, maxChatResults)
		}
	}

	clients := make([]catalogtransport.ClientSearchResult, 0)
	if result.ClientSearchTerm != "" {
		found, err := h.catalog.SearchClients(ctx, result.ClientSearchTerm, clientSearchLimit)
		if err != nil {
			h.log.Warn("client search during chat failed", "error", err)
		} else {
			clients = capClients(found, maxChatResults)
		}
	}

	httpkit.OK(c, transport.ChatMessageResponse{
		Response:     result.Response,
		QuickReplies: result.QuickReplies,
		NextStep:     result.NextStep,
		Products:     products,
		Clients:      clients,
		Timestamp:    req.Timestamp,
	})
}

// AnalyzeImage analyzes an uploaded image for construction materials.
// POST /api/v1/chat/analyze-image
func (h *Handler) AnalyzeImage(c *gin.Context) {
	var req transport.AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgImageDataRequired, nil)
		return
	}

	// Strip a data:image/...;base64, prefix if present.
	imageData := req.ImageData
	if idx := strings.Index(imageData, ","); idx >= 0 {
		imageData = imageData[idx+1:]
	}

	result := h.extractor.AnalyzeImage(c.Request.Context(), imageData)
	httpkit.OK(c, result)
}

func capArticles(items []catalogtransport.Article, limit int) []catalogtransport.Article {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func capClients(items []catalogtransport.ClientSearchResult, limit int) []catalogtransport.ClientSearchResult {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
