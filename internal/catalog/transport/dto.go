// Package transport defines the catalog wire types shared between the
// upstream client, the cache and the HTTP layer. Field names follow the
// upstream API, which speaks Spanish.
package transport

import "encoding/json"

// PriceEntry is a price for an article on a specific price list.
// Upstream serves prices as decimal strings.
type PriceEntry struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Precio string `json:"precio"`
}

// Article is a catalog product with its per-list prices.
type Article struct {
	Codigo    string       `json:"codigo"`
	Nombre    string       `json:"nombre"`
	CodigoInt string       `json:"codigoint"`
	Precios   []PriceEntry `json:"precios"`
}

// PriceList is a price list assigned to a construction site.
type PriceList struct {
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
}

// Site is a client construction site (obra) with its price lists.
type Site struct {
	Codigo string      `json:"codigo"`
	Nombre string      `json:"nombre"`
	Listas []PriceList `json:"listas"`
}

// ClientData holds the identifying fields of a client.
type ClientData struct {
	Email       string `json:"email"`
	CUIT        string `json:"cuit"`
	Telefono    string `json:"telefono"`
	RazonSocial string `json:"razon_social"`
}

// ClientSociety is a society a client buys from.
type ClientSociety struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// Client is a client record with its sites.
type Client struct {
	Datos      ClientData      `json:"datos"`
	Sociedades []ClientSociety `json:"sociedades"`
	Obras      []Site          `json:"obras"`
}

// Branch is a society branch office.
type Branch struct {
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
}

// Society is a selling company with its branches.
type Society struct {
	Nombre     string   `json:"nombre"`
	Codigo     string   `json:"codigo"`
	Sucursales []Branch `json:"sucursales"`
}

// Snapshot origin markers. Fallback snapshots are cached like upstream ones
// but stay inspectable through the Source field.
const (
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
	SourceMock     = "mock"
)

// Snapshot is one cached upstream dataset. Exactly one of the collection
// fields is populated depending on the operation that produced it. Resultado
// stays opaque: upstream is not consistent about serving it as a number or a
// string, and nothing here depends on its value.
type Snapshot struct {
	Resultado  json.RawMessage `json:"resultado,omitempty"`
	Clientes   []Client        `json:"clientes,omitempty"`
	Sociedades []Society       `json:"sociedades,omitempty"`
	Articulos  []Article       `json:"articulos,omitempty"`
	Source     string          `json:"source,omitempty"`
}

// ClientSearchResult is the simplified client shape returned by searches:
// identity plus only the matching sites.
type ClientSearchResult struct {
	RazonSocial string `json:"razon_social"`
	CUIT        string `json:"cuit"`
	Obras       []Site `json:"obras"`
}

// SearchRequest is the body for product and client searches.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// SearchProductsResponse wraps product search results.
type SearchProductsResponse struct {
	Products []Article `json:"products"`
	Total    int       `json:"total"`
}

// SearchClientsResponse wraps client search results.
type SearchClientsResponse struct {
	Clients []ClientSearchResult `json:"clients"`
	Total   int                  `json:"total"`
}

// ProductResponse wraps a single product lookup.
type ProductResponse struct {
	Product Article `json:"product"`
}

// SocietiesResponse wraps the society listing.
type SocietiesResponse struct {
	Societies []Society `json:"societies"`
}

// PriceListsResponse wraps the price lists of a site.
type PriceListsResponse struct {
	PriceLists []PriceList `json:"price_lists"`
}
