package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"corralon_backend/internal/catalog/transport"
)

func TestMemoryStore_EntryExpiresAfterTTL(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return current })

	snapshot := transport.Snapshot{Resultado: json.RawMessage("1"), Source: transport.SourceUpstream}
	if err := store.Set(context.Background(), "operacion_3", snapshot, 5*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := store.Get(context.Background(), "operacion_3")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Source != transport.SourceUpstream {
		t.Fatalf("expected upstream source, got %q", got.Source)
	}

	current = current.Add(5*time.Minute + time.Second)
	if _, ok, _ := store.Get(context.Background(), "operacion_3"); ok {
		t.Fatal("expected entry to expire after TTL")
	}
}

func TestMemoryStore_MissOnUnknownKey(t *testing.T) {
	store := NewMemoryStore()
	if _, ok, err := store.Get(context.Background(), "operacion_1"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStore_ClearDropsAllEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "operacion_1", transport.Snapshot{Resultado: json.RawMessage("1")}, time.Minute)
	_ = store.Set(ctx, "operacion_2", transport.Snapshot{Resultado: json.RawMessage("1")}, time.Minute)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "operacion_1"); ok {
		t.Fatal("expected operacion_1 to be gone after clear")
	}
	if _, ok, _ := store.Get(ctx, "operacion_2"); ok {
		t.Fatal("expected operacion_2 to be gone after clear")
	}
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	return NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	snapshot := transport.Snapshot{
		Resultado: json.RawMessage("1"),
		Articulos: []transport.Article{{Codigo: "10104", Nombre: "CEMENTO"}},
		Source:    transport.SourceFallback,
	}
	if err := store.Set(ctx, "operacion_3", snapshot, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := store.Get(ctx, "operacion_3")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got.Articulos) != 1 || got.Articulos[0].Codigo != "10104" {
		t.Fatalf("unexpected snapshot payload: %+v", got)
	}
	if got.Source != transport.SourceFallback {
		t.Fatalf("expected fallback source, got %q", got.Source)
	}
}

func TestRedisStore_MissOnUnknownKey(t *testing.T) {
	store := newTestRedisStore(t)
	if _, ok, err := store.Get(context.Background(), "operacion_1"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestRedisStore_ClearDropsOnlyPrefixedKeys(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedisStore(client)
	ctx := context.Background()

	_ = store.Set(ctx, "operacion_1", transport.Snapshot{Resultado: json.RawMessage("1")}, time.Minute)
	if err := client.Set(ctx, "unrelated", "keep", 0).Err(); err != nil {
		t.Fatalf("seed unrelated key: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "operacion_1"); ok {
		t.Fatal("expected snapshot to be gone after clear")
	}
	if !srv.Exists("unrelated") {
		t.Fatal("clear must not touch keys outside the snapshot prefix")
	}
}

func TestRedisStore_CorruptEntryBehavesLikeMiss(t *testing.T) {
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))

	if err := srv.Set("catalog:snapshot:operacion_3", "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}
	if _, ok, err := store.Get(context.Background(), "operacion_3"); ok || err != nil {
		t.Fatalf("expected corrupt entry to read as miss, got ok=%v err=%v", ok, err)
	}
}
