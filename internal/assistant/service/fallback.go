package service

import (
	"regexp"
	"strings"
)

// DefaultQuickReplies are offered whenever the extractor produces none.
var DefaultQuickReplies = []string{
	"Agregar obra",
	"Agregar lista de precios",
	"Agregar materiales y cantidades",
	"Buscar en el sistema",
	"Proporcionar más información",
}

var (
	searchNamedPattern = regexp.MustCompile(`\bbusc(?:a|ar)\s+a\s+([a-záéíóúñü\-\s]{2,})`)
	searchTermPattern  = regexp.MustCompile(`\bbusc(?:a|ar)\s+([a-záéíóúñü\-]{3,})`)
)

const maxClientSearchTermLen = 50

// InferClientSearchTerm extracts a client search term from phrases like
// "busca a juan perez en la obra X". Trailing location qualifiers are cut
// off and the term is capped at 50 characters. Returns "" when no pattern
// matches.
func InferClientSearchTerm(message string) string {
	lower := strings.ToLower(message)

	match := searchNamedPattern.FindStringSubmatch(lower)
	if match == nil {
		match = searchTermPattern.FindStringSubmatch(lower)
	}
	if match == nil {
		return ""
	}

	term := strings.TrimSpace(match[1])
	for _, separator := range []string{" en ", " del ", " de "} {
		if idx := strings.Index(term, separator); idx >= 0 {
			term = term[:idx]
		}
	}
	term = strings.TrimSpace(term)

	if runes := []rune(term); len(runes) > maxClientSearchTermLen {
		term = string(runes[:maxClientSearchTermLen])
	}
	return term
}

// ApplyIntentDefaults fills missing fields on a raw extraction result:
// next step, inferred client search term and default quick replies.
func ApplyIntentDefaults(result IntentResult, message string) IntentResult {
	if result.NextStep == "" {
		result.NextStep = StepContinueConversation
	}
	if result.ClientSearchTerm == "" {
		result.ClientSearchTerm = InferClientSearchTerm(message)
	}
	if len(result.QuickReplies) == 0 {
		result.QuickReplies = append([]string(nil), DefaultQuickReplies...)
	}
	return result
}
