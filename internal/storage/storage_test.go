package storage

import (
	"context"
	"testing"
)

type entry struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func TestLoadList_AbsentKeyIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if got := LoadList[entry](ctx, mem, "missing"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestLoadList_MalformedValueIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	if err := mem.Set(ctx, "bad", []byte("][")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if got := LoadList[entry](ctx, mem, "bad"); len(got) != 0 {
		t.Fatalf("expected empty list for malformed value, got %+v", got)
	}
}

func TestSaveList_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	in := []entry{{ID: "A", Qty: 2}, {ID: "B", Qty: 1}}
	if err := SaveList(ctx, mem, "list", in); err != nil {
		t.Fatalf("SaveList: %v", err)
	}

	out := LoadList[entry](ctx, mem, "list")
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestSaveList_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if err := SaveList(ctx, mem, "list", []entry{{ID: "A"}, {ID: "B"}}); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	if err := SaveList(ctx, mem, "list", []entry{{ID: "C"}}); err != nil {
		t.Fatalf("SaveList: %v", err)
	}

	out := LoadList[entry](ctx, mem, "list")
	if len(out) != 1 || out[0].ID != "C" {
		t.Fatalf("expected replaced list, got %+v", out)
	}
}

func TestSaveList_NilSavesEmptyList(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if err := SaveList[entry](ctx, mem, "list", nil); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	raw, err := mem.Get(ctx, "list")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty json array, got %q", raw)
	}
}

func TestMemory_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if err := mem.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mem.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	raw, err := mem.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil after delete, got %q", raw)
	}
}
