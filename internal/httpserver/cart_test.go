package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestAddCartItem_Created(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"notice":"Hoodie added to cart"`) {
		t.Fatalf("missing notice: %s", body)
	}
	if !strings.Contains(body, `"count":1`) {
		t.Fatalf("missing count: %s", body)
	}
}

func TestAddCartItem_QuantityAddsPerUnit(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7","quantity":4}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"count":4`) {
		t.Fatalf("unexpected count: %s", rec.Body.String())
	}
}

func TestAddCartItem_PartialAddStopsAtCeiling(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	// Hoodie has 3 in stock; asking for 5 lands 3 and reports the limit.
	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42","quantity":5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"count":3`) {
		t.Fatalf("expected 3 in cart: %s", body)
	}
	if !strings.Contains(body, "Maximum available quantity (3) already in cart") {
		t.Fatalf("missing limit notice: %s", body)
	}
}

func TestAddCartItem_RefusedAtStockCeiling(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	// Hoodie has 3 in stock.
	for range 3 {
		rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"reason":"limit_reached"`) {
		t.Fatalf("missing reason: %s", body)
	}
	if !strings.Contains(body, "Maximum available quantity (3) already in cart") {
		t.Fatalf("missing notice: %s", body)
	}
	if !strings.Contains(body, `"count":3`) {
		t.Fatalf("cart should be unchanged at 3: %s", body)
	}
}

func TestAddCartItem_OutOfStock(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"99"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"reason":"out_of_stock"`) {
		t.Fatalf("missing reason: %s", body)
	}
	if !strings.Contains(body, "Poster is out of stock") {
		t.Fatalf("missing notice: %s", body)
	}
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"404"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddCartItem_MissingProductID(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateCartItem_ClampsToCeiling(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	if rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed add failed: %d", rec.Code)
	}

	rec := doJSON(router, http.MethodPatch, "/api/cart/items/42", `{"quantity":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"notice":"Only 3 available"`) {
		t.Fatalf("missing clamp notice: %s", body)
	}
	if !strings.Contains(body, `"count":3`) {
		t.Fatalf("quantity not clamped to 3: %s", body)
	}
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	if rec := doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed add failed: %d", rec.Code)
	}

	rec := doJSON(router, http.MethodPatch, "/api/cart/items/7", `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty cart: %s", rec.Body.String())
	}
}

func TestGetCart_TotalAndCount(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`)
	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7"}`)
	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7"}`)

	rec := doJSON(router, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state cartStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Count != 3 {
		t.Fatalf("count: got %d, want 3", state.Count)
	}
	if state.Total != 49.99+2*12 {
		t.Fatalf("total: got %v", state.Total)
	}
	if state.Notice != "" {
		t.Fatalf("plain read should carry no notice, got %q", state.Notice)
	}
}

func TestRemoveCartItem_Idempotent(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7"}`)

	for range 2 {
		rec := doJSON(router, http.MethodDelete, "/api/cart/items/7", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestClearCart(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"7"}`)

	rec := doJSON(router, http.MethodDelete, "/api/cart", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/api/cart", "")
	if !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Fatalf("cart not cleared: %s", rec.Body.String())
	}
}

func TestCheckout_FromPersistedCart(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	doJSON(router, http.MethodPost, "/api/cart/items", `{"productId":"42"}`)

	rec := doJSON(router, http.MethodPost, "/api/checkout", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://shop.example.com/checkout/?add-to-cart=42&quantity=1") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	deps, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(router, http.MethodPost, "/api/checkout", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
