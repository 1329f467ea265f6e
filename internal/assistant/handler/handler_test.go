package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"corralon_backend/internal/assistant/service"
	"corralon_backend/internal/assistant/transport"
	catalogtransport "corralon_backend/internal/catalog/transport"
	"corralon_backend/platform/logger"
)

type stubExtractor struct {
	result      service.IntentResult
	gotMessage  string
	transcripts int
}

func (e *stubExtractor) ExtractIntent(_ context.Context, message string, _ []service.ConversationTurn, _ []service.FileAttachment) service.IntentResult {
	e.gotMessage = message
	return e.result
}

func (e *stubExtractor) SummarizeBudget(_ context.Context, items []service.SummaryItem) service.Summary {
	return service.Summary{ItemCount: len(items)}
}

func (e *stubExtractor) AnalyzeImage(_ context.Context, _ string) service.ImageAnalysis {
	return service.ImageAnalysis{Analysis: "Imagen recibida.", MaterialsDetected: []string{}}
}

func (e *stubExtractor) TranscribeAudio(_ context.Context, _ []byte) string {
	e.transcripts++
	return "necesito cemento"
}

type stubCatalog struct {
	articles      []catalogtransport.Article
	clients       []catalogtransport.ClientSearchResult
	articleQuery  string
	clientQuery   string
	articleCalled bool
	clientCalled  bool
}

func (s *stubCatalog) SearchArticles(_ context.Context, query string, _ int) ([]catalogtransport.Article, error) {
	s.articleCalled = true
	s.articleQuery = query
	return s.articles, nil
}

func (s *stubCatalog) SearchClients(_ context.Context, query string, _ int) ([]catalogtransport.ClientSearchResult, error) {
	s.clientCalled = true
	s.clientQuery = query
	return s.clients, nil
}

func newChatRequest(t *testing.T, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/chat/message", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return recorder, c
}

func TestProcessMessage_RequiresMessageOrFiles(t *testing.T) {
	h := New(&stubExtractor{}, &stubCatalog{}, logger.New("test"))

	recorder, c := newChatRequest(t, `{"message":"   "}`)
	h.ProcessMessage(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestProcessMessage_ProductSearchEnrichment(t *testing.T) {
	extractor := &stubExtractor{result: service.IntentResult{
		Response:           "Aquí tienes opciones de cemento.",
		NextStep:           service.StepSearchProducts,
		NeedsProductSearch: true,
	}}
	catalog := &stubCatalog{articles: []catalogtransport.Article{{Codigo: "50103", Nombre: "CEMENTO"}}}
	h := New(extractor, catalog, logger.New("test"))

	recorder, c := newChatRequest(t, `{"message":"necesito cemento"}`)
	h.ProcessMessage(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !catalog.articleCalled || catalog.articleQuery != "necesito cemento" {
		t.Fatalf("expected product search with message, got called=%v query=%q", catalog.articleCalled, catalog.articleQuery)
	}
	if catalog.clientCalled {
		t.Fatal("client search must not run without a search term")
	}

	var resp transport.ChatMessageResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Products) != 1 || resp.Products[0].Codigo != "50103" {
		t.Fatalf("expected product enrichment, got %+v", resp.Products)
	}
}

func TestProcessMessage_ClientSearchEnrichment(t *testing.T) {
	extractor := &stubExtractor{result: service.IntentResult{
		Response:         "Buscando al cliente.",
		ClientSearchTerm: "walter",
	}}
	catalog := &stubCatalog{clients: []catalogtransport.ClientSearchResult{{RazonSocial: "Walter SA"}}}
	h := New(extractor, catalog, logger.New("test"))

	recorder, c := newChatRequest(t, `{"message":"busca a walter"}`)
	h.ProcessMessage(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !catalog.clientCalled || catalog.clientQuery != "walter" {
		t.Fatalf("expected client search for %q, got called=%v query=%q", "walter", catalog.clientCalled, catalog.clientQuery)
	}

	var resp transport.ChatMessageResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Clients) != 1 || resp.Clients[0].RazonSocial != "Walter SA" {
		t.Fatalf("expected client enrichment, got %+v", resp.Clients)
	}
}

func TestProcessMessage_AudioTranscriptAppended(t *testing.T) {
	extractor := &stubExtractor{result: service.IntentResult{Response: "ok"}}
	h := New(extractor, &stubCatalog{}, logger.New("test"))

	audio := base64.StdEncoding.EncodeToString([]byte("audio-bytes"))
	recorder, c := newChatRequest(t, `{"message":"hola","files":[{"type":"audio","data":"`+audio+`"}]}`)
	h.ProcessMessage(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if extractor.transcripts != 1 {
		t.Fatalf("expected one transcription, got %d", extractor.transcripts)
	}
	if extractor.gotMessage != "hola [Audio transcrito: necesito cemento]" {
		t.Fatalf("expected transcript appended to message, got %q", extractor.gotMessage)
	}
}

func TestAnalyzeImage_StripsDataURLPrefix(t *testing.T) {
	h := New(&stubExtractor{}, &stubCatalog{}, logger.New("test"))

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/chat/analyze-image",
		strings.NewReader(`{"image_data":"data:image/png;base64,ZGF0YQ=="}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.AnalyzeImage(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var resp service.ImageAnalysis
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Analysis == "" {
		t.Fatal("expected analysis text")
	}
}
