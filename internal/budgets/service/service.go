// Package service assembles budgets from selected catalog items.
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	assistantsvc "corralon_backend/internal/assistant/service"
	"corralon_backend/internal/budgets/transport"
	"corralon_backend/platform/phone"

	"github.com/bwmarrin/snowflake"
)

// TaxRate is the VAT applied to every budget (IVA 21%).
const TaxRate = 0.21

// Line totals are caller-provided; deviations beyond this tolerance from
// quantity times unit price produce a warning, never an error.
const consistencyTolerance = 0.01

// Summarizer produces an executive summary for a set of budget items.
type Summarizer interface {
	SummarizeBudget(ctx context.Context, items []assistantsvc.SummaryItem) assistantsvc.Summary
}

// Service assembles and prices budgets.
type Service struct {
	summarizer Summarizer
	node       *snowflake.Node
	now        func() time.Time
}

// New creates the budget service. The snowflake node provides collision-free
// budget ids across concurrent requests.
func New(summarizer Summarizer, node *snowflake.Node) *Service {
	return &Service{
		summarizer: summarizer,
		node:       node,
		now:        time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Assemble builds a budget from the given items: totals with 21% tax, a
// generated id, normalized client contact data and an executive summary.
// Summary generation never fails the assembly.
func (s *Service) Assemble(ctx context.Context, items []transport.BudgetItem, clientInfo transport.ClientInfo) transport.Budget {
	subtotal := Subtotal(items)
	iva := subtotal * TaxRate

	clientInfo.Phone = phone.NormalizeE164(clientInfo.Phone)

	budget := transport.Budget{
		ID:         s.NewID(),
		CreatedAt:  s.now(),
		ClientInfo: clientInfo,
		Items:      items,
		Subtotal:   subtotal,
		IVA:        iva,
		Total:      subtotal + iva,
		Summary:    s.summarizer.SummarizeBudget(ctx, summaryItems(items)),
		Warnings:   consistencyWarnings(items),
	}
	return budget
}

// AssembleQuick builds a budget without summary from bare items, for the
// quick PDF flow.
func (s *Service) AssembleQuick(items []transport.BudgetItem, clientName string) transport.Budget {
	subtotal := Subtotal(items)
	iva := subtotal * TaxRate

	return transport.Budget{
		ID:         s.NewID(),
		CreatedAt:  s.now(),
		ClientInfo: transport.ClientInfo{Name: clientName},
		Items:      items,
		Subtotal:   subtotal,
		IVA:        iva,
		Total:      subtotal + iva,
	}
}

// NewID generates a budget id.
func (s *Service) NewID() string {
	return "PRES-" + s.node.Generate().String()
}

// Subtotal sums the caller-provided line totals.
func Subtotal(items []transport.BudgetItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	return subtotal
}

func summaryItems(items []transport.BudgetItem) []assistantsvc.SummaryItem {
	results := make([]assistantsvc.SummaryItem, 0, len(items))
	for _, item := range items {
		results = append(results, assistantsvc.SummaryItem{Name: item.Nombre, Total: item.Total})
	}
	return results
}

func consistencyWarnings(items []transport.BudgetItem) []string {
	var warnings []string
	for _, item := range items {
		if item.Cantidad == 0 && item.PrecioUnitario == 0 {
			continue
		}
		expected := item.Cantidad * item.PrecioUnitario
		if math.Abs(expected-item.Total) > consistencyTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"item %s: total %.2f difiere de cantidad x precio unitario (%.2f)",
				item.Codigo, item.Total, expected,
			))
		}
	}
	return warnings
}
