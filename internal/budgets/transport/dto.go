// Package transport defines the budget wire and storage types.
package transport

import (
	"time"

	assistantsvc "corralon_backend/internal/assistant/service"
)

// BudgetItem is one budget line. The line total is provided by the caller,
// who may have applied manual adjustments, and is trusted as-is.
type BudgetItem struct {
	Codigo         string  `json:"codigo"`
	Nombre         string  `json:"nombre"`
	Cantidad       float64 `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Total          float64 `json:"total"`
}

// ClientInfo is the free-form client block printed on the document.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Budget is a fully assembled budget.
type Budget struct {
	ID         string               `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	ClientInfo ClientInfo           `json:"client_info"`
	Items      []BudgetItem         `json:"items"`
	Subtotal   float64              `json:"subtotal"`
	IVA        float64              `json:"iva"`
	Total      float64              `json:"total"`
	Summary    assistantsvc.Summary `json:"summary"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// GenerateBudgetRequest is the body of POST /budget/generate.
type GenerateBudgetRequest struct {
	Items      []BudgetItem `json:"items" binding:"required"`
	ClientInfo ClientInfo   `json:"client_info"`
}

// GeneratePDFRequest is the body of POST /budget/generate-pdf.
type GeneratePDFRequest struct {
	Budget *Budget `json:"budget" binding:"required"`
}

// QuickPDFRequest is the body of POST /budget/quick-pdf.
type QuickPDFRequest struct {
	Items      []BudgetItem `json:"items" binding:"required"`
	ClientName string       `json:"client_name"`
}

// SaveBudgetRequest is the body of POST /budget/save.
type SaveBudgetRequest struct {
	Budget *Budget `json:"budget" binding:"required"`
}

// BudgetResponse wraps a generated budget.
type BudgetResponse struct {
	Budget  Budget `json:"budget"`
	Message string `json:"message,omitempty"`
}

// SaveBudgetResponse reports where a budget was stored.
type SaveBudgetResponse struct {
	Message  string `json:"message"`
	BudgetID string `json:"budget_id"`
	FilePath string `json:"file_path"`
}

// BudgetListEntry is the condensed shape returned by the listing endpoint.
type BudgetListEntry struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ClientName string    `json:"client_name"`
	Total      float64   `json:"total"`
	ItemsCount int       `json:"items_count"`
}

// ListBudgetsResponse wraps the budget listing.
type ListBudgetsResponse struct {
	Budgets []BudgetListEntry `json:"budgets"`
}
