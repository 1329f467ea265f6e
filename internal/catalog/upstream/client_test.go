package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"corralon_backend/internal/catalog/transport"
	"corralon_backend/platform/apperr"
)

func TestClient_FetchSetsOperationAndSource(t *testing.T) {
	var gotOperacion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOperacion = r.URL.Query().Get("operacion")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultado":1,"articulos":[{"codigo":"10104","nombre":"CEMENTO"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	snapshot, err := client.Fetch(context.Background(), OpArticles)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotOperacion != "3" {
		t.Fatalf("expected operacion=3, got %q", gotOperacion)
	}
	if snapshot.Source != transport.SourceUpstream {
		t.Fatalf("expected upstream source, got %q", snapshot.Source)
	}
	if len(snapshot.Articulos) != 1 || snapshot.Articulos[0].Codigo != "10104" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestClient_ToleratesStringResultado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultado":"true","articulos":[{"codigo":"10104","nombre":"CEMENTO"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	snapshot, err := client.Fetch(context.Background(), OpArticles)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(snapshot.Articulos) != 1 || snapshot.Articulos[0].Codigo != "10104" {
		t.Fatalf("a string resultado must not break decoding, got %+v", snapshot)
	}
}

func TestClient_StatusErrorIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background(), OpSocieties)
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if apperr.Is(err, apperr.KindBadGateway) {
		t.Fatal("status failures must stay plain errors so the gateway can fall back")
	}
}

func TestClient_NetworkErrorIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background(), OpClientsSites)
	if err == nil {
		t.Fatal("expected error on unreachable upstream")
	}
	if apperr.Is(err, apperr.KindBadGateway) {
		t.Fatal("network failures must stay plain errors so the gateway can fall back")
	}
}

func TestClient_MalformedBodyIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background(), OpArticles)
	if err == nil {
		t.Fatal("expected error on malformed body")
	}
	if !apperr.Is(err, apperr.KindBadGateway) {
		t.Fatalf("expected bad gateway error, got %v", err)
	}
}

func TestOperation_CacheKeys(t *testing.T) {
	cases := []struct {
		op   Operation
		key  string
		name string
	}{
		{OpClientsSites, "operacion_1", "clients_sites"},
		{OpSocieties, "operacion_2", "societies"},
		{OpArticles, "operacion_3", "articles"},
	}
	for _, tc := range cases {
		if got := tc.op.CacheKey(); got != tc.key {
			t.Fatalf("expected cache key %q, got %q", tc.key, got)
		}
		if got := tc.op.String(); got != tc.name {
			t.Fatalf("expected name %q, got %q", tc.name, got)
		}
	}
}
