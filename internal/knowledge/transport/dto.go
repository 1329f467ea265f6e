// Package transport defines request and response shapes for the knowledge base.
package transport

import "time"

// Item is one knowledge base entry.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult is a knowledge item annotated with its match relevance.
type SearchResult struct {
	Item
	Relevance int `json:"relevance"`
}

// Category describes one selectable knowledge category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddItemRequest creates a new knowledge entry.
type AddItemRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

// UpdateItemRequest partially updates an entry. Nil fields are left untouched.
type UpdateItemRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// SearchRequest queries the knowledge base.
type SearchRequest struct {
	Query string `json:"query"`
}

// ListResponse wraps the full knowledge listing.
type ListResponse struct {
	Knowledge []Item `json:"knowledge"`
}

// ItemResponse wraps a single entry, optionally with a status message.
type ItemResponse struct {
	Message   string `json:"message,omitempty"`
	Knowledge Item   `json:"knowledge"`
}

// SearchResponse wraps search hits ordered by relevance.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// CategoriesResponse wraps the available categories.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// ExportResponse is the full knowledge base dump.
type ExportResponse struct {
	KnowledgeBase []Item    `json:"knowledge_base"`
	ExportedAt    time.Time `json:"exported_at"`
	TotalItems    int       `json:"total_items"`
}
