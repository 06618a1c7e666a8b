package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedis(t *testing.T) *Redis {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client)
}

func TestRedis_GetAbsentKey(t *testing.T) {
	ctx := context.Background()
	r := testRedis(t)

	raw, err := r.Get(ctx, "cart:nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil for absent key, got %q", raw)
	}
}

func TestRedis_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	r := testRedis(t)

	if err := r.Set(ctx, "cart:s1", []byte(`[{"productId":"A"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err := r.Get(ctx, "cart:s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `[{"productId":"A"}]` {
		t.Fatalf("unexpected value %q", raw)
	}

	if err := r.Delete(ctx, "cart:s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	raw, err = r.Get(ctx, "cart:s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil after delete, got %q", raw)
	}
}

func TestRedis_KeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	r := NewRedis(client)

	if err := r.Set(ctx, "cart:s1", []byte("[]")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !srv.Exists("storefront:cart:s1") {
		t.Fatalf("expected prefixed key in redis, have %v", srv.Keys())
	}
}
