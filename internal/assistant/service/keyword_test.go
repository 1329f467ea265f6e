package service

import (
	"context"
	"strings"
	"testing"
)

// deterministic extractor always picking the first canned response
func newFixedExtractor() *KeywordExtractor {
	e := NewKeywordExtractor()
	e.pick = func(int) int { return 0 }
	return e
}

func TestKeywordExtractor_ClassifiesGreeting(t *testing.T) {
	e := newFixedExtractor()

	result := e.ExtractIntent(context.Background(), "Hola, ¿cómo estás?", nil, nil)

	if !strings.Contains(result.Response, "presupuesto de materiales") {
		t.Fatalf("expected greeting response, got %q", result.Response)
	}
	if result.NeedsProductSearch {
		t.Fatal("a greeting must not trigger product search")
	}
	if result.NextStep != StepContinueConversation {
		t.Fatalf("expected continue_conversation, got %q", result.NextStep)
	}
}

func TestKeywordExtractor_CementTriggersProductSearch(t *testing.T) {
	e := newFixedExtractor()

	result := e.ExtractIntent(context.Background(), "necesito cemento para mi obra", nil, nil)

	if !result.NeedsProductSearch {
		t.Fatal("cement queries must trigger product search")
	}
	if result.NextStep != StepSearchProducts {
		t.Fatalf("expected search_products, got %q", result.NextStep)
	}
}

func TestKeywordExtractor_HouseGetsProjectTypeReplies(t *testing.T) {
	e := newFixedExtractor()

	result := e.ExtractIntent(context.Background(), "quiero construir una casa de 120 metros", nil, nil)

	if len(result.QuickReplies) == 0 || result.QuickReplies[0] != "Casa particular" {
		t.Fatalf("expected project type quick replies, got %v", result.QuickReplies)
	}
}

func TestKeywordExtractor_FinalBudgetStep(t *testing.T) {
	e := newFixedExtractor()

	result := e.ExtractIntent(context.Background(), "el presupuesto está listo", nil, nil)

	if result.NextStep != StepGenerateBudget {
		t.Fatalf("expected generate_budget, got %q", result.NextStep)
	}
}

func TestKeywordExtractor_DefaultsApplied(t *testing.T) {
	e := newFixedExtractor()

	result := e.ExtractIntent(context.Background(), "xyzzy", nil, nil)

	if result.Response == "" {
		t.Fatal("expected a canned default response")
	}
	if len(result.QuickReplies) != len(DefaultQuickReplies) {
		t.Fatalf("expected default quick replies, got %v", result.QuickReplies)
	}
}

func TestSummarizeBudget_TotalsAndCategories(t *testing.T) {
	e := newFixedExtractor()
	items := []SummaryItem{
		{Name: "CEMENTO AVELLANEDA X 50 KG", Total: 17000},
		{Name: "LADRILLO COMUN", Total: 38478.2},
		{Name: "ARENA FINA X M3", Total: 37696.12},
		{Name: "KLAUKOL IMPERMEABLE X 30KG", Total: 12500},
		{Name: "TORNILLOS", Total: 850},
	}

	summary := e.SummarizeBudget(context.Background(), items)

	if summary.ItemCount != 5 {
		t.Fatalf("expected 5 items, got %d", summary.ItemCount)
	}
	var wantTotal float64
	for _, item := range items {
		wantTotal += item.Total
	}
	if summary.TotalAmount != wantTotal {
		t.Fatalf("expected total %v, got %v", wantTotal, summary.TotalAmount)
	}
	if !strings.Contains(summary.Summary, "Total de items: 5") {
		t.Fatalf("summary text missing item count: %q", summary.Summary)
	}

	wantCategories := []string{"Morteros y Aglomerantes", "Mampostería", "Áridos", "Adhesivos", "Otros"}
	if len(summary.Categories) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %d", len(wantCategories), len(summary.Categories))
	}
	for i, want := range wantCategories {
		if summary.Categories[i].Name != want {
			t.Fatalf("expected category %q at position %d, got %q", want, i, summary.Categories[i].Name)
		}
	}
}

func TestTranscribeAudioAndAnalyzeImageAreCanned(t *testing.T) {
	e := newFixedExtractor()

	if got := e.TranscribeAudio(context.Background(), []byte{0x01}); got == "" {
		t.Fatal("expected canned transcription prompt")
	}
	analysis := e.AnalyzeImage(context.Background(), "ZGF0YQ==")
	if analysis.Analysis == "" || len(analysis.MaterialsDetected) == 0 {
		t.Fatalf("expected canned image analysis, got %+v", analysis)
	}
}
