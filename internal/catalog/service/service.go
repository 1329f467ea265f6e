package service

import (
	"context"
	"strconv"
	"strings"

	"corralon_backend/internal/catalog/transport"
	"corralon_backend/internal/catalog/upstream"
)

const defaultSearchLimit = 50

// Service answers entity lookups over the gateway's snapshots.
type Service struct {
	gateway *Gateway
}

// New creates the catalog search service.
func New(gateway *Gateway) *Service {
	return &Service{gateway: gateway}
}

// Gateway exposes the underlying gateway for cache management.
func (s *Service) Gateway() *Gateway {
	return s.gateway
}

// SearchClients finds clients whose name or CUIT contains the query, plus
// clients owning a site whose name matches. A client match pulls in all of
// its sites; otherwise only the matching sites are returned.
func (s *Service) SearchClients(ctx context.Context, query string, limit int) ([]transport.ClientSearchResult, error) {
	snapshot, err := s.gateway.Fetch(ctx, upstream.OpClientsSites)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]transport.ClientSearchResult, 0)

	for _, client := range snapshot.Clientes {
		if len(results) >= limit {
			break
		}

		razon := strings.ToLower(client.Datos.RazonSocial)
		cuit := strings.ToLower(client.Datos.CUIT)
		clientMatch := strings.Contains(razon, needle) || (needle != "" && strings.Contains(cuit, needle))

		matchedSites := make([]transport.Site, 0)
		for _, site := range client.Obras {
			if clientMatch || strings.Contains(strings.ToLower(site.Nombre), needle) {
				matchedSites = append(matchedSites, site)
			}
		}

		if clientMatch || len(matchedSites) > 0 {
			results = append(results, transport.ClientSearchResult{
				RazonSocial: client.Datos.RazonSocial,
				CUIT:        client.Datos.CUIT,
				Obras:       matchedSites,
			})
		}
	}

	return results, nil
}

// SearchArticles finds articles whose name or code contains the query,
// preserving catalog order.
func (s *Service) SearchArticles(ctx context.Context, query string, limit int) ([]transport.Article, error) {
	snapshot, err := s.gateway.Fetch(ctx, upstream.OpArticles)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	needle := strings.ToLower(query)
	results := make([]transport.Article, 0)

	for _, article := range snapshot.Articulos {
		if len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(article.Nombre), needle) ||
			strings.Contains(strings.ToLower(article.Codigo), needle) {
			results = append(results, article)
		}
	}

	return results, nil
}

// GetArticleByCode returns the article with the exact code.
func (s *Service) GetArticleByCode(ctx context.Context, code string) (transport.Article, bool, error) {
	snapshot, err := s.gateway.Fetch(ctx, upstream.OpArticles)
	if err != nil {
		return transport.Article{}, false, err
	}

	for _, article := range snapshot.Articulos {
		if article.Codigo == code {
			return article, true, nil
		}
	}
	return transport.Article{}, false, nil
}

// GetPriceListsForSite returns the price lists of the site with the given
// code, searching across all clients. Unknown sites yield an empty list.
func (s *Service) GetPriceListsForSite(ctx context.Context, siteCode string) ([]transport.PriceList, error) {
	snapshot, err := s.gateway.Fetch(ctx, upstream.OpClientsSites)
	if err != nil {
		return nil, err
	}

	for _, client := range snapshot.Clientes {
		for _, site := range client.Obras {
			if site.Codigo == siteCode {
				if site.Listas == nil {
					return []transport.PriceList{}, nil
				}
				return site.Listas, nil
			}
		}
	}
	return []transport.PriceList{}, nil
}

// GetPrice returns the numeric price of an article on a price list.
// Unknown article, unknown list or an unparsable price all report not found.
func (s *Service) GetPrice(ctx context.Context, articleCode, listCode string) (float64, bool, error) {
	article, found, err := s.GetArticleByCode(ctx, articleCode)
	if err != nil || !found {
		return 0, false, err
	}

	for _, entry := range article.Precios {
		if entry.Codigo != listCode {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(entry.Precio), 64)
		if err != nil {
			return 0, false, nil
		}
		return price, true, nil
	}
	return 0, false, nil
}

// Societies returns all societies with their branches.
func (s *Service) Societies(ctx context.Context) ([]transport.Society, error) {
	snapshot, err := s.gateway.Fetch(ctx, upstream.OpSocieties)
	if err != nil {
		return nil, err
	}
	if snapshot.Sociedades == nil {
		return []transport.Society{}, nil
	}
	return snapshot.Sociedades, nil
}
