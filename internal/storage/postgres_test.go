package storage

import (
	"context"
	"os"
	"testing"

	"storefront-gateway/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE kv_entries`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	p := NewPostgres(pool)

	raw, err := p.Get(ctx, "cart:absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil for absent key, got %q", raw)
	}

	if err := p.Set(ctx, "cart:s1", []byte(`[{"productId":"A","quantity":1}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Upsert replaces the prior value.
	if err := p.Set(ctx, "cart:s1", []byte(`[{"productId":"A","quantity":2}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err = p.Get(ctx, "cart:s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `[{"productId": "A", "quantity": 2}]` && string(raw) != `[{"productId":"A","quantity":2}]` {
		t.Fatalf("unexpected value %q", raw)
	}

	if err := p.Delete(ctx, "cart:s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	raw, err = p.Get(ctx, "cart:s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil after delete, got %q", raw)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
