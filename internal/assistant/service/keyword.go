package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

// Message classes the keyword extractor distinguishes.
const (
	classGreeting  = "greeting"
	classCement    = "cement"
	classHouse     = "house"
	classMaterials = "materials"
	classDefault   = "default"
)

var cannedResponses = map[string][]string{
	classGreeting: {
		"¡Hola! Perfecto, estoy aquí para ayudarte con tu presupuesto de materiales de construcción.",
		"¡Excelente! Vamos a trabajar juntos en tu presupuesto. ¿Podrías contarme más detalles sobre tu proyecto?",
	},
	classCement: {
		"Perfecto, tenemos varios tipos de cemento disponibles. ¿Para qué tipo de obra lo necesitas?",
		"Excelente elección. El cemento es fundamental en cualquier construcción. ¿Cuántos metros cuadrados vas a construir?",
	},
	classHouse: {
		"Una casa de 120m² es un proyecto interesante. ¿En qué etapa de la obra estás? ¿Estructura, terminaciones o obra completa?",
		"Para una casa de esas dimensiones necesitaremos calcular varios materiales. ¿Tienes los planos o especificaciones técnicas?",
	},
	classMaterials: {
		"Te voy a mostrar algunos materiales que podrían interesarte para tu proyecto.",
		"Basándome en tu consulta, he encontrado estos productos en nuestro catálogo.",
	},
	classDefault: {
		"Entiendo tu consulta. Para poder ayudarte mejor, ¿podrías darme más detalles sobre tu proyecto?",
		"Perfecto, estoy analizando tu solicitud. ¿Qué tipo de obra estás planificando?",
	},
}

var contextQuickReplies = map[string][]string{
	"project_type":       {"Casa particular", "Edificio", "Reforma", "Obra comercial"},
	"construction_stage": {"Estructura", "Terminaciones", "Obra completa"},
	"area_size":          {"50m²", "100m²", "150m²", "200m²", "Otro"},
	"confirm":            {"Sí, correcto", "No, modificar", "Agregar más"},
}

var productSearchKeywords = []string{
	"cemento", "cal", "yeso", "ladrillo", "bloque", "arena",
	"piedra", "adhesivo", "klaukol", "material", "producto",
	"precio", "costo", "cuanto", "disponible",
}

// KeywordExtractor is a local IntentExtractor without external dependencies.
// It classifies messages by keyword and answers from canned responses, so
// the assistant keeps working when no model API key is configured.
type KeywordExtractor struct {
	pick func(n int) int
}

// NewKeywordExtractor creates the local extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{pick: rand.Intn}
}

// ExtractIntent classifies the message and builds a canned result.
func (e *KeywordExtractor) ExtractIntent(_ context.Context, message string, _ []ConversationTurn, _ []FileAttachment) IntentResult {
	lower := strings.ToLower(message)
	class := classifyMessage(lower)

	responses := cannedResponses[class]
	result := IntentResult{
		Response:           responses[e.pick(len(responses))],
		QuickReplies:       quickRepliesFor(lower, class),
		NextStep:           determineNextStep(lower),
		NeedsProductSearch: needsProductSearch(lower),
	}
	return ApplyIntentDefaults(result, message)
}

// SummarizeBudget builds a fixed-format summary with item categories.
func (e *KeywordExtractor) SummarizeBudget(_ context.Context, items []SummaryItem) Summary {
	var total float64
	for _, item := range items {
		total += item.Total
	}

	text := fmt.Sprintf(
		"Resumen del Presupuesto:\n\nTotal de items: %d\nMonto total: $%s\n\n"+
			"Este presupuesto incluye los materiales básicos para tu proyecto de construcción.\n"+
			"Te recomiendo revisar las cantidades y consultar con un profesional para validar\n"+
			"que sean suficientes para tu obra específica.",
		len(items), formatAmount(total),
	)

	return Summary{
		Summary:     text,
		TotalAmount: total,
		ItemCount:   len(items),
		Categories:  categorizeItems(items),
	}
}

// AnalyzeImage returns a canned analysis; there is no local vision model.
func (e *KeywordExtractor) AnalyzeImage(_ context.Context, _ string) ImageAnalysis {
	return ImageAnalysis{
		Analysis: "He recibido tu imagen. Basándome en lo que puedo ver, parece ser relacionado con construcción. " +
			"¿Podrías describir qué materiales específicos necesitas?",
		MaterialsDetected: []string{"cemento", "ladrillo", "arena"},
	}
}

// TranscribeAudio returns a canned prompt; there is no local transcription.
func (e *KeywordExtractor) TranscribeAudio(_ context.Context, _ []byte) string {
	return "Audio recibido. Por favor, escribe tu consulta en el chat para poder ayudarte mejor."
}

func classifyMessage(message string) string {
	switch {
	case containsAny(message, "hola", "buenos", "buenas", "saludos"):
		return classGreeting
	case containsAny(message, "cemento", "cal", "yeso"):
		return classCement
	case containsAny(message, "casa", "vivienda", "m2", "metros"):
		return classHouse
	case containsAny(message, "material", "producto", "articulo", "precio"):
		return classMaterials
	default:
		return classDefault
	}
}

func quickRepliesFor(message, class string) []string {
	switch {
	case class == classHouse || strings.Contains(message, "tipo de obra"):
		return contextQuickReplies["project_type"]
	case containsAny(message, "etapa", "fase"):
		return contextQuickReplies["construction_stage"]
	case containsAny(message, "metros", "superficie"):
		return contextQuickReplies["area_size"]
	case containsAny(message, "confirmar", "correcto"):
		return contextQuickReplies["confirm"]
	default:
		return nil
	}
}

func needsProductSearch(message string) bool {
	return containsAny(message, productSearchKeywords...)
}

func determineNextStep(message string) string {
	switch {
	case strings.Contains(message, "presupuesto") && containsAny(message, "listo", "final"):
		return StepGenerateBudget
	case needsProductSearch(message):
		return StepSearchProducts
	case containsAny(message, "confirmar", "correcto"):
		return StepConfirmDetails
	default:
		return StepContinueConversation
	}
}

func categorizeItems(items []SummaryItem) []CategorySummary {
	order := make([]string, 0, 5)
	grouped := make(map[string]*CategorySummary)

	for _, item := range items {
		name := strings.ToLower(item.Name)
		var category string
		switch {
		case containsAny(name, "cemento", "cal", "yeso"):
			category = "Morteros y Aglomerantes"
		case containsAny(name, "ladrillo", "bloque"):
			category = "Mampostería"
		case containsAny(name, "piedra", "arena"):
			category = "Áridos"
		case containsAny(name, "klaukol", "adhesivo"):
			category = "Adhesivos"
		default:
			category = "Otros"
		}

		entry, ok := grouped[category]
		if !ok {
			entry = &CategorySummary{Name: category}
			grouped[category] = entry
			order = append(order, category)
		}
		entry.Items++
		entry.Total += item.Total
	}

	results := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		results = append(results, *grouped[name])
	}
	return results
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func formatAmount(value float64) string {
	raw := fmt.Sprintf("%.2f", value)
	dot := strings.Index(raw, ".")
	intPart, fracPart := raw[:dot], raw[dot+1:]

	var sign string
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return sign + builder.String() + "." + fracPart
}

var _ IntentExtractor = (*KeywordExtractor)(nil)
