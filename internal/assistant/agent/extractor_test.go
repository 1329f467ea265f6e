package agent

import (
	"strings"
	"testing"

	"corralon_backend/internal/assistant/service"
)

func TestParseIntentPayload_FullObject(t *testing.T) {
	payload := `{"response":"Encontré al cliente.","quick_replies":["Ver obras"],` +
		`"next_step":"confirm_details","needs_product_search":true,"client_search_term":"walter"}`

	result, ok := parseIntentPayload(payload)
	if !ok {
		t.Fatal("expected payload to parse")
	}
	if result.Response != "Encontré al cliente." {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if !result.NeedsProductSearch {
		t.Fatal("expected needs_product_search true")
	}
	if result.ClientSearchTerm != "walter" {
		t.Fatalf("unexpected search term %q", result.ClientSearchTerm)
	}
	if result.NextStep != service.StepConfirmDetails {
		t.Fatalf("unexpected next step %q", result.NextStep)
	}
}

func TestParseIntentPayload_NullSearchTerm(t *testing.T) {
	payload := `{"response":"ok","quick_replies":[],"next_step":"continue_conversation",` +
		`"needs_product_search":false,"client_search_term":null}`

	result, ok := parseIntentPayload(payload)
	if !ok {
		t.Fatal("expected payload to parse")
	}
	if result.ClientSearchTerm != "" {
		t.Fatalf("null search term must be empty, got %q", result.ClientSearchTerm)
	}
}

func TestParseIntentPayload_MarkdownFencedJSON(t *testing.T) {
	payload := "```json\n{\"response\":\"hola\",\"next_step\":\"continue_conversation\"}\n```"

	result, ok := parseIntentPayload(payload)
	if !ok {
		t.Fatal("expected fenced payload to parse")
	}
	if result.Response != "hola" {
		t.Fatalf("unexpected response %q", result.Response)
	}
}

func TestParseIntentPayload_PlainTextFails(t *testing.T) {
	if _, ok := parseIntentPayload("lo siento, no entendí"); ok {
		t.Fatal("plain text must not parse as an intent payload")
	}
}

func TestBuildIntentPrompt_IncludesHistoryAndMessage(t *testing.T) {
	history := []service.ConversationTurn{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "¡Hola! ¿En qué te ayudo?"},
	}

	prompt := buildIntentPrompt("necesito cemento", history)

	if !strings.Contains(prompt, "Historial reciente:") {
		t.Fatalf("expected history header in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "[usuario] hola") {
		t.Fatalf("expected user turn in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "[asistente] ¡Hola! ¿En qué te ayudo?") {
		t.Fatalf("expected assistant turn in prompt: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Mensaje del usuario:\nnecesito cemento") {
		t.Fatalf("expected message at end of prompt: %q", prompt)
	}
}

func TestBuildIntentPrompt_LimitsHistory(t *testing.T) {
	history := make([]service.ConversationTurn, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, service.ConversationTurn{Role: "user", Content: "turno"})
	}

	prompt := buildIntentPrompt("mensaje", history)

	if got := strings.Count(prompt, "[usuario]"); got != maxHistoryTurns {
		t.Fatalf("expected %d history turns, got %d", maxHistoryTurns, got)
	}
}

func TestBuildIntentPrompt_NoHistory(t *testing.T) {
	prompt := buildIntentPrompt("hola", nil)
	if strings.Contains(prompt, "Historial reciente:") {
		t.Fatalf("no history header expected: %q", prompt)
	}
	if prompt != "Mensaje del usuario:\nhola" {
		t.Fatalf("unexpected prompt %q", prompt)
	}
}
