// Package service contains the assistant's intent extraction logic.
package service

import "context"

// Next-step values returned to the frontend to drive the conversation flow.
const (
	StepGenerateBudget       = "generate_budget"
	StepSearchProducts       = "search_products"
	StepConfirmDetails       = "confirm_details"
	StepContinueConversation = "continue_conversation"
	StepError                = "error"
)

// ConversationTurn is one prior message in the chat.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FileAttachment is a file sent along with a chat message, base64 encoded.
type FileAttachment struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// IntentResult is the structured outcome of processing one user message.
type IntentResult struct {
	Response           string   `json:"response"`
	QuickReplies       []string `json:"quick_replies"`
	NextStep           string   `json:"next_step"`
	NeedsProductSearch bool     `json:"needs_product_search"`
	ClientSearchTerm   string   `json:"client_search_term,omitempty"`
}

// SummaryItem is the minimal item view the summarizer needs.
type SummaryItem struct {
	Name  string
	Total float64
}

// CategorySummary groups budget items into a material category.
type CategorySummary struct {
	Name  string  `json:"name"`
	Items int     `json:"items"`
	Total float64 `json:"total"`
}

// Summary is an executive summary of a budget.
type Summary struct {
	Summary     string            `json:"summary"`
	TotalAmount float64           `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	Categories  []CategorySummary `json:"categories,omitempty"`
}

// ImageAnalysis is the outcome of analyzing an uploaded image.
type ImageAnalysis struct {
	Analysis          string   `json:"analysis"`
	MaterialsDetected []string `json:"materials_detected"`
}

// IntentExtractor turns free-form user input into structured intents.
// Implementations never fail the conversation: on any internal problem they
// return a degraded but usable result.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, message string, history []ConversationTurn, files []FileAttachment) IntentResult
	SummarizeBudget(ctx context.Context, items []SummaryItem) Summary
	AnalyzeImage(ctx context.Context, imageBase64 string) ImageAnalysis
	TranscribeAudio(ctx context.Context, audio []byte) string
}
