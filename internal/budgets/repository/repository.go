// Package repository persists budgets as JSON files on disk.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"corralon_backend/internal/budgets/transport"
	"corralon_backend/platform/apperr"
)

const budgetNotFoundMessage = "presupuesto no encontrado"

var validBudgetID = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// FileRepository stores one JSON file per budget under a base directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the repository, ensuring the directory exists.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create budgets dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// Save writes the budget to disk and returns the file path.
func (r *FileRepository) Save(budget transport.Budget) (string, error) {
	if !validBudgetID.MatchString(budget.ID) {
		return "", apperr.Validation("id de presupuesto inválido")
	}

	payload, err := json.MarshalIndent(budget, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal budget: %w", err)
	}

	path := filepath.Join(r.dir, budget.ID+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write budget file: %w", err)
	}
	return path, nil
}

// List returns condensed entries for all stored budgets, newest first.
// Unreadable or corrupt files are skipped.
func (r *FileRepository) List() ([]transport.BudgetListEntry, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []transport.BudgetListEntry{}, nil
		}
		return nil, fmt.Errorf("read budgets dir: %w", err)
	}

	results := make([]transport.BudgetListEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			continue
		}
		var budget transport.Budget
		if err := json.Unmarshal(payload, &budget); err != nil {
			continue
		}

		clientName := budget.ClientInfo.Name
		if clientName == "" {
			clientName = "Sin nombre"
		}
		results = append(results, transport.BudgetListEntry{
			ID:         budget.ID,
			CreatedAt:  budget.CreatedAt,
			ClientName: clientName,
			Total:      budget.Total,
			ItemsCount: len(budget.Items),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

// Get loads one budget by id.
func (r *FileRepository) Get(id string) (transport.Budget, error) {
	if !validBudgetID.MatchString(id) {
		return transport.Budget{}, apperr.NotFound(budgetNotFoundMessage)
	}

	payload, err := os.ReadFile(filepath.Join(r.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return transport.Budget{}, apperr.NotFound(budgetNotFoundMessage)
		}
		return transport.Budget{}, fmt.Errorf("read budget file: %w", err)
	}

	var budget transport.Budget
	if err := json.Unmarshal(payload, &budget); err != nil {
		return transport.Budget{}, fmt.Errorf("decode budget file: %w", err)
	}
	return budget, nil
}
