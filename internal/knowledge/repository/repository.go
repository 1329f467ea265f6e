// Package repository persists knowledge base entries as JSON files on disk.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"corralon_backend/internal/knowledge/transport"
	"corralon_backend/platform/apperr"
	"corralon_backend/platform/sanitize"
)

const itemNotFoundMessage = "conocimiento no encontrado"

// DefaultCategory is assigned when the caller does not pick one.
const DefaultCategory = "otros"

var validItemID = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// FileRepository stores one JSON file per knowledge entry under a base directory.
type FileRepository struct {
	dir string
	now func() time.Time
}

// NewFileRepository creates the repository, ensuring the directory exists.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create knowledge dir: %w", err)
	}
	return &FileRepository{dir: dir, now: time.Now}, nil
}

// SetClock overrides the time source. Test hook.
func (r *FileRepository) SetClock(now func() time.Time) {
	r.now = now
}

// Add creates and stores a new entry.
func (r *FileRepository) Add(title, content, category string) (transport.Item, error) {
	if category == "" {
		category = DefaultCategory
	}

	timestamp := r.now()
	item := transport.Item{
		ID:        "know-" + uuid.NewString(),
		Title:     sanitize.Text(title),
		Content:   sanitize.Text(content),
		Category:  category,
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}

	if err := r.write(item); err != nil {
		return transport.Item{}, err
	}
	return item, nil
}

// List returns all entries, newest first. Corrupt files are skipped.
func (r *FileRepository) List() ([]transport.Item, error) {
	items, err := r.readAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Get loads one entry by id.
func (r *FileRepository) Get(id string) (transport.Item, error) {
	if !validItemID.MatchString(id) {
		return transport.Item{}, apperr.NotFound(itemNotFoundMessage)
	}

	payload, err := os.ReadFile(filepath.Join(r.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return transport.Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return transport.Item{}, fmt.Errorf("read knowledge file: %w", err)
	}

	var item transport.Item
	if err := json.Unmarshal(payload, &item); err != nil {
		return transport.Item{}, fmt.Errorf("decode knowledge file: %w", err)
	}
	return item, nil
}

// Update applies the non-nil fields of the request to an existing entry.
func (r *FileRepository) Update(id string, req transport.UpdateItemRequest) (transport.Item, error) {
	item, err := r.Get(id)
	if err != nil {
		return transport.Item{}, err
	}

	if req.Title != nil {
		item.Title = sanitize.Text(*req.Title)
	}
	if req.Content != nil {
		item.Content = sanitize.Text(*req.Content)
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	item.UpdatedAt = r.now()

	if err := r.write(item); err != nil {
		return transport.Item{}, err
	}
	return item, nil
}

// Delete removes one entry by id.
func (r *FileRepository) Delete(id string) error {
	if !validItemID.MatchString(id) {
		return apperr.NotFound(itemNotFoundMessage)
	}

	err := os.Remove(filepath.Join(r.dir, id+".json"))
	if os.IsNotExist(err) {
		return apperr.NotFound(itemNotFoundMessage)
	}
	if err != nil {
		return fmt.Errorf("delete knowledge file: %w", err)
	}
	return nil
}

// Search matches the query against title and content, case-insensitive.
// Title hits weigh twice as much as content hits; results come back ordered
// by relevance.
func (r *FileRepository) Search(query string) ([]transport.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []transport.SearchResult{}, nil
	}

	items, err := r.readAll()
	if err != nil {
		return nil, err
	}

	results := make([]transport.SearchResult, 0, len(items))
	for _, item := range items {
		relevance := 0
		if strings.Contains(strings.ToLower(item.Title), query) {
			relevance += 2
		}
		if strings.Contains(strings.ToLower(item.Content), query) {
			relevance++
		}
		if relevance > 0 {
			results = append(results, transport.SearchResult{Item: item, Relevance: relevance})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results, nil
}

// All returns every stored entry in directory order, for export.
func (r *FileRepository) All() ([]transport.Item, error) {
	return r.readAll()
}

func (r *FileRepository) write(item transport.Item) error {
	payload, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge item: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, item.ID+".json"), payload, 0o644); err != nil {
		return fmt.Errorf("write knowledge file: %w", err)
	}
	return nil
}

func (r *FileRepository) readAll() ([]transport.Item, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []transport.Item{}, nil
		}
		return nil, fmt.Errorf("read knowledge dir: %w", err)
	}

	items := make([]transport.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		payload, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			continue
		}
		var item transport.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
