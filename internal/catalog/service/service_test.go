package service

import (
	"context"
	"testing"
	"time"

	"corralon_backend/internal/catalog/cache"
	"corralon_backend/platform/logger"
)

// newSampleService serves the built-in sample dataset without upstream calls.
func newSampleService() *Service {
	gateway := NewGateway(nil, cache.NewMemoryStore(), 5*time.Minute, true, logger.New("test"))
	return New(gateway)
}

func TestSearchArticles_MatchesByName(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchArticles(context.Background(), "ladrillo", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(results))
	}
	if results[0].Codigo != "30101" || results[1].Codigo != "30104" {
		t.Fatalf("expected catalog order 30101, 30104; got %s, %s", results[0].Codigo, results[1].Codigo)
	}
}

func TestSearchArticles_MatchesByCode(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchArticles(context.Background(), "10104", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Codigo != "10104" {
		t.Fatalf("expected single match for code 10104, got %+v", results)
	}
}

func TestSearchArticles_HonorsLimit(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchArticles(context.Background(), "", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected limit of 3 results, got %d", len(results))
	}
}

func TestSearchClients_ClientMatchPullsInAllSites(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchClients(context.Background(), "cliente", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 client, got %d", len(results))
	}
	if len(results[0].Obras) != 2 {
		t.Fatalf("a client name match must return all of its sites, got %d", len(results[0].Obras))
	}
}

func TestSearchClients_SiteMatchReturnsOnlyMatchingSites(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchClients(context.Background(), "casa", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 client, got %d", len(results))
	}
	if len(results[0].Obras) != 1 || results[0].Obras[0].Codigo != "155" {
		t.Fatalf("expected only the matching site 155, got %+v", results[0].Obras)
	}
}

func TestSearchClients_MatchesByCUIT(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchClients(context.Background(), "20316528210", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected CUIT match, got %d results", len(results))
	}
}

func TestSearchClients_NoMatchIsEmpty(t *testing.T) {
	svc := newSampleService()

	results, err := svc.SearchClients(context.Background(), "walter", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestGetArticleByCode(t *testing.T) {
	svc := newSampleService()
	ctx := context.Background()

	article, found, err := svc.GetArticleByCode(ctx, "30101")
	if err != nil || !found {
		t.Fatalf("expected article 30101, got found=%v err=%v", found, err)
	}
	if article.Nombre != "LADRILLO COMUN" {
		t.Fatalf("unexpected article name %q", article.Nombre)
	}

	if _, found, err := svc.GetArticleByCode(ctx, "99999"); found || err != nil {
		t.Fatalf("expected not found for unknown code, got found=%v err=%v", found, err)
	}
}

func TestGetPriceListsForSite(t *testing.T) {
	svc := newSampleService()
	ctx := context.Background()

	lists, err := svc.GetPriceListsForSite(ctx, "155")
	if err != nil {
		t.Fatalf("price lists: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 price lists for site 155, got %d", len(lists))
	}

	lists, err = svc.GetPriceListsForSite(ctx, "999")
	if err != nil {
		t.Fatalf("price lists for unknown site: %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("expected empty list for unknown site, got %d", len(lists))
	}
}

func TestGetPrice_ParsesTextualPrice(t *testing.T) {
	svc := newSampleService()

	price, found, err := svc.GetPrice(context.Background(), "10104", "14462")
	if err != nil || !found {
		t.Fatalf("expected price, got found=%v err=%v", found, err)
	}
	if price != 79794.368 {
		t.Fatalf("expected price 79794.368, got %v", price)
	}
}

func TestGetPrice_UnknownListIsNotFound(t *testing.T) {
	svc := newSampleService()

	_, found, err := svc.GetPrice(context.Background(), "10104", "99999")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if found {
		t.Fatal("expected not found for unknown price list")
	}
}

func TestSocieties_ReturnsSampleSet(t *testing.T) {
	svc := newSampleService()

	societies, err := svc.Societies(context.Background())
	if err != nil {
		t.Fatalf("societies: %v", err)
	}
	if len(societies) != 4 {
		t.Fatalf("expected 4 societies, got %d", len(societies))
	}
}
