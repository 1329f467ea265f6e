package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"corralon_backend/internal/catalog/cache"
	"corralon_backend/internal/catalog/transport"
	"corralon_backend/internal/catalog/upstream"
	"corralon_backend/platform/apperr"
	"corralon_backend/platform/logger"
)

type stubFetcher struct {
	calls    int
	snapshot transport.Snapshot
	err      error
}

func (f *stubFetcher) Fetch(_ context.Context, _ upstream.Operation) (transport.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return transport.Snapshot{}, f.err
	}
	return f.snapshot, nil
}

func newTestGateway(fetcher Fetcher, useMock bool) *Gateway {
	return NewGateway(fetcher, cache.NewMemoryStore(), 5*time.Minute, useMock, logger.New("test"))
}

func TestGateway_CachesUpstreamSnapshot(t *testing.T) {
	fetcher := &stubFetcher{snapshot: transport.Snapshot{Resultado: json.RawMessage("1"), Source: transport.SourceUpstream}}
	gateway := newTestGateway(fetcher, false)
	ctx := context.Background()

	first, err := gateway.Fetch(ctx, upstream.OpArticles)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := gateway.Fetch(ctx, upstream.OpArticles)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", fetcher.calls)
	}
	if first.Source != transport.SourceUpstream || second.Source != transport.SourceUpstream {
		t.Fatalf("expected upstream source on both fetches, got %q and %q", first.Source, second.Source)
	}
}

func TestGateway_UnreachableUpstreamFallsBackAndCaches(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	gateway := newTestGateway(fetcher, false)
	ctx := context.Background()

	snapshot, err := gateway.Fetch(ctx, upstream.OpArticles)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snapshot.Source != transport.SourceFallback {
		t.Fatalf("expected fallback source, got %q", snapshot.Source)
	}
	if len(snapshot.Articulos) == 0 {
		t.Fatal("expected fallback snapshot to carry sample articles")
	}

	// The degraded snapshot is cached like a real one.
	if _, err := gateway.Fetch(ctx, upstream.OpArticles); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected fallback to be served from cache, got %d upstream calls", fetcher.calls)
	}
}

func TestGateway_BadGatewayIsPropagatedAndNeverCached(t *testing.T) {
	fetcher := &stubFetcher{err: apperr.BadGateway("invalid catalog response")}
	gateway := newTestGateway(fetcher, false)
	ctx := context.Background()

	if _, err := gateway.Fetch(ctx, upstream.OpArticles); !apperr.Is(err, apperr.KindBadGateway) {
		t.Fatalf("expected bad gateway error, got %v", err)
	}
	if _, err := gateway.Fetch(ctx, upstream.OpArticles); !apperr.Is(err, apperr.KindBadGateway) {
		t.Fatalf("expected bad gateway error on retry, got %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected each call to retry upstream, got %d calls", fetcher.calls)
	}
}

func TestGateway_ClearCacheForcesRefetch(t *testing.T) {
	fetcher := &stubFetcher{snapshot: transport.Snapshot{Resultado: json.RawMessage("1"), Source: transport.SourceUpstream}}
	gateway := newTestGateway(fetcher, false)
	ctx := context.Background()

	if _, err := gateway.Fetch(ctx, upstream.OpSocieties); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := gateway.ClearCache(ctx); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if _, err := gateway.Fetch(ctx, upstream.OpSocieties); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected refetch after clear, got %d upstream calls", fetcher.calls)
	}
}

func TestGateway_MockModeNeverCallsUpstream(t *testing.T) {
	fetcher := &stubFetcher{snapshot: transport.Snapshot{Resultado: json.RawMessage("1")}}
	gateway := newTestGateway(fetcher, true)

	snapshot, err := gateway.Fetch(context.Background(), upstream.OpClientsSites)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("mock mode must not call upstream, got %d calls", fetcher.calls)
	}
	if snapshot.Source != transport.SourceMock {
		t.Fatalf("expected mock source, got %q", snapshot.Source)
	}
	if len(snapshot.Clientes) == 0 {
		t.Fatal("expected mock snapshot to carry sample clients")
	}
}
