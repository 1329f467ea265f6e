// Package service contains the catalog gateway and entity search logic.
package service

import (
	"context"
	"time"

	"corralon_backend/internal/catalog/cache"
	"corralon_backend/internal/catalog/transport"
	"corralon_backend/internal/catalog/upstream"
	"corralon_backend/platform/apperr"
	"corralon_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves a catalog dataset from the upstream service.
type Fetcher interface {
	Fetch(ctx context.Context, op upstream.Operation) (transport.Snapshot, error)
}

// Gateway serves catalog snapshots from cache, upstream or sample data.
//
// Unreachable upstream degrades to the built-in sample dataset, and that
// fallback snapshot is cached for the full TTL like a real one. A response
// that arrives but cannot be decoded is a bad gateway error and is never
// cached, so the next call retries.
type Gateway struct {
	fetcher Fetcher
	store   cache.SnapshotStore
	ttl     time.Duration
	useMock bool
	log     *logger.Logger
	group   singleflight.Group
}

// NewGateway creates a catalog gateway.
func NewGateway(fetcher Fetcher, store cache.SnapshotStore, ttl time.Duration, useMock bool, log *logger.Logger) *Gateway {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Gateway{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		useMock: useMock,
		log:     log,
	}
}

// Fetch returns the snapshot for an operation, consulting the cache first.
// Concurrent cache misses for the same dataset share a single upstream call.
func (g *Gateway) Fetch(ctx context.Context, op upstream.Operation) (transport.Snapshot, error) {
	key := op.CacheKey()

	if snapshot, ok, err := g.store.Get(ctx, key); err == nil && ok {
		return snapshot, nil
	}

	result, err, _ := g.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the cache while we waited.
		if snapshot, ok, err := g.store.Get(ctx, key); err == nil && ok {
			return snapshot, nil
		}

		snapshot, err := g.load(ctx, op)
		if err != nil {
			return nil, err
		}

		if err := g.store.Set(ctx, key, snapshot, g.ttl); err != nil {
			g.log.Warn("failed to cache catalog snapshot", "dataset", op.String(), "error", err)
		}
		return snapshot, nil
	})
	if err != nil {
		return transport.Snapshot{}, err
	}
	return result.(transport.Snapshot), nil
}

func (g *Gateway) load(ctx context.Context, op upstream.Operation) (transport.Snapshot, error) {
	if g.useMock {
		return upstream.Sample(op, transport.SourceMock), nil
	}

	snapshot, err := g.fetcher.Fetch(ctx, op)
	if err == nil {
		return snapshot, nil
	}
	if apperr.Is(err, apperr.KindBadGateway) {
		return transport.Snapshot{}, err
	}

	g.log.UpstreamFallback(op.String(), err)
	return upstream.Sample(op, transport.SourceFallback), nil
}

// ClearCache drops every cached snapshot so the next fetch hits upstream.
func (g *Gateway) ClearCache(ctx context.Context) error {
	return g.store.Clear(ctx)
}
