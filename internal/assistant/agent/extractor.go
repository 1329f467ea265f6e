// Package agent implements the model-backed intent extractor on top of the
// ADK agent runtime.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"corralon_backend/internal/assistant/service"
	"corralon_backend/platform/ai/openaichat"
	"corralon_backend/platform/logger"
)

const (
	appName = "budget-assistant"

	maxHistoryTurns   = 10
	maxTurnChars      = 4000
	maxMessageChars   = 6000
	extractorTemp     = 0.2
	defaultRunTimeout = 30 * time.Second
)

const systemPrompt = "Eres un asistente interno de Corralón HDL que ayuda a operadores a armar presupuestos " +
	"a partir de pedidos que llegan por WhatsApp. Responde de forma concisa, profesional y operativa. " +
	"No inventes precios ni códigos: cuando sea necesario, sugiere usar las herramientas del sistema para " +
	"buscar artículos o precios. Mantén un tono colaborativo, con foco en completar la información mínima " +
	"(cliente, obra, lista de precios, cantidades y materiales)."

const schemaInstructions = "Responde SOLO en JSON estricto con las claves: " +
	"response (string), quick_replies (array de strings), next_step (string), " +
	"needs_product_search (boolean), client_search_term (string|null). " +
	"Si el usuario pide buscar un cliente/obra (ej. 'Walter'), establece client_search_term al término de búsqueda. " +
	`Ejemplo: {"response":"...","quick_replies":["..."],"next_step":"...","needs_product_search":false,"client_search_term":null}`

// Config holds the model settings for the extractor.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Extractor is the model-backed IntentExtractor. Every call runs in a fresh
// in-memory session; conversation history travels inside the prompt.
type Extractor struct {
	runner         *runner.Runner
	sessionService session.Service
	log            *logger.Logger
	timeout        time.Duration
	runMu          sync.Mutex
}

// NewExtractor creates the intent extraction agent.
func NewExtractor(cfg Config, log *logger.Logger) (*Extractor, error) {
	temperature := extractorTemp
	chatModel := openaichat.NewModel(openaichat.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &temperature,
		JSONMode:    true,
		Timeout:     cfg.Timeout,
	})

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "IntentExtractor",
		Model:       chatModel,
		Description: "Extracts structured budget intents from chat messages.",
		Instruction: systemPrompt + " " + schemaInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create intent extractor agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create intent extractor runner: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}

	return &Extractor{
		runner:         r,
		sessionService: sessionService,
		log:            log,
		timeout:        timeout,
	}, nil
}

// ExtractIntent asks the model for a structured intent. Model failures and
// unparsable output degrade to a usable fallback, never to an error.
func (e *Extractor) ExtractIntent(ctx context.Context, message string, history []service.ConversationTurn, _ []service.FileAttachment) service.IntentResult {
	prompt := buildIntentPrompt(message, history)

	text, err := e.run(ctx, prompt)
	if err != nil {
		e.log.ModelCallFailed("extract_intent", err)
		return service.ApplyIntentDefaults(service.IntentResult{
			Response: "Lo siento, hubo un error al procesar tu mensaje. Por favor, intenta nuevamente.",
		}, message)
	}

	result, ok := parseIntentPayload(text)
	if !ok {
		result = service.IntentResult{Response: strings.TrimSpace(text)}
	}
	return service.ApplyIntentDefaults(result, message)
}

// SummarizeBudget asks the model for an executive summary. On failure the
// summary text is empty but totals are still reported.
func (e *Extractor) SummarizeBudget(ctx context.Context, items []service.SummaryItem) service.Summary {
	var total float64
	for _, item := range items {
		total += item.Total
	}

	fallback := service.Summary{TotalAmount: total, ItemCount: len(items)}

	prompt := fmt.Sprintf(
		"Genera un breve resumen ejecutivo del presupuesto en 3-5 líneas. "+
			"No inventes materiales ni precios. Solo resume cantidades y total. "+
			`Total: %.2f. Formato JSON: {"summary": string, "total_amount": number, "item_count": number}`,
		total,
	)

	text, err := e.run(ctx, prompt)
	if err != nil {
		e.log.ModelCallFailed("summarize_budget", err)
		return fallback
	}

	var summary service.Summary
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &summary); err != nil {
		e.log.ModelCallFailed("summarize_budget", err)
		return fallback
	}
	if summary.TotalAmount == 0 {
		summary.TotalAmount = total
	}
	if summary.ItemCount == 0 {
		summary.ItemCount = len(items)
	}
	return summary
}

// AnalyzeImage acknowledges the image. Vision input is not wired into the
// chat completions adapter, so this matches the degraded behavior of a
// failed analysis.
func (e *Extractor) AnalyzeImage(_ context.Context, _ string) service.ImageAnalysis {
	return service.ImageAnalysis{Analysis: "Imagen recibida.", MaterialsDetected: []string{}}
}

// TranscribeAudio is not implemented; the caller treats "" as no transcript.
func (e *Extractor) TranscribeAudio(_ context.Context, _ []byte) string {
	return ""
}

func (e *Extractor) run(ctx context.Context, prompt string) (string, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	sessionID := uuid.New().String()
	userID := "assistant-" + sessionID

	_, err := e.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("intent extractor: create session: %w", err)
	}
	defer func() {
		_ = e.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   appName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{{
			Text: prompt,
		}},
	}

	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}

	var outputText strings.Builder
	for event, err := range e.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return "", fmt.Errorf("intent extractor: run failed: %w", err)
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			outputText.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(outputText.String()), nil
}

func buildIntentPrompt(message string, history []service.ConversationTurn) string {
	var builder strings.Builder

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	if len(history) > 0 {
		builder.WriteString("Historial reciente:\n")
		for _, turn := range history {
			content := truncateRunes(strings.TrimSpace(turn.Content), maxTurnChars)
			if content == "" {
				continue
			}
			label := "asistente"
			if turn.Role == "user" {
				label = "usuario"
			}
			builder.WriteString("[" + label + "] " + content + "\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString("Mensaje del usuario:\n")
	builder.WriteString(truncateRunes(strings.TrimSpace(message), maxMessageChars))
	return builder.String()
}

func parseIntentPayload(text string) (service.IntentResult, bool) {
	var payload struct {
		Response           string   `json:"response"`
		QuickReplies       []string `json:"quick_replies"`
		NextStep           string   `json:"next_step"`
		NeedsProductSearch bool     `json:"needs_product_search"`
		ClientSearchTerm   *string  `json:"client_search_term"`
	}

	if err := json.Unmarshal([]byte(extractJSONObject(text)), &payload); err != nil {
		return service.IntentResult{}, false
	}

	result := service.IntentResult{
		Response:           payload.Response,
		QuickReplies:       payload.QuickReplies,
		NextStep:           payload.NextStep,
		NeedsProductSearch: payload.NeedsProductSearch,
	}
	if payload.ClientSearchTerm != nil {
		result.ClientSearchTerm = strings.TrimSpace(*payload.ClientSearchTerm)
	}
	return result, true
}

// extractJSONObject strips markdown fences and surrounding prose that models
// sometimes wrap around JSON output.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

var _ service.IntentExtractor = (*Extractor)(nil)
