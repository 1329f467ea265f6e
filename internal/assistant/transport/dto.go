// Package transport defines the assistant HTTP request/response shapes.
package transport

import (
	"corralon_backend/internal/assistant/service"
	catalogtransport "corralon_backend/internal/catalog/transport"
)

// ChatMessageRequest is the body of POST /chat/message.
type ChatMessageRequest struct {
	Message   string                     `json:"message"`
	History   []service.ConversationTurn `json:"history"`
	Files     []service.FileAttachment   `json:"files"`
	Timestamp interface{}                `json:"timestamp"`
}

// ChatMessageResponse is the assistant's answer to a chat message.
type ChatMessageResponse struct {
	Response     string                                `json:"response"`
	QuickReplies []string                              `json:"quick_replies"`
	NextStep     string                                `json:"next_step"`
	Products     []catalogtransport.Article            `json:"products"`
	Clients      []catalogtransport.ClientSearchResult `json:"clients"`
	Timestamp    interface{}                           `json:"timestamp"`
}

// AnalyzeImageRequest is the body of POST /chat/analyze-image.
type AnalyzeImageRequest struct {
	ImageData string `json:"image_data" binding:"required"`
}
