package wordpress

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-gateway/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "ck_test", "cs_test", "123", testLogger())
}

func TestProducts_MapsWooCommerceFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wc/v3/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			t.Errorf("missing or wrong basic auth: %s/%s", user, pass)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{
				"id": 42,
				"sku": "HOODIE-42",
				"name": "Hoodie",
				"slug": "hoodie",
				"price": "49.99",
				"regular_price": "59.99",
				"sale_price": "49.99",
				"images": [{"src": "https://cdn.example.com/hoodie.jpg"}],
				"categories": [{"name": "Apparel", "slug": "apparel"}],
				"stock_status": "instock",
				"stock_quantity": 7,
				"manage_stock": true,
				"featured": true,
				"tags": [{"name": "warm"}]
			},
			{
				"id": 43,
				"name": "Sticker",
				"price": "not-a-number",
				"stock_status": "outofstock",
				"stock_quantity": null
			}
		]`)
	})

	products, err := client.Products(context.Background(), "")
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	hoodie := products[0]
	if hoodie.ID != "42" || hoodie.Name != "Hoodie" {
		t.Fatalf("unexpected product: %+v", hoodie)
	}
	if hoodie.Price != 49.99 || hoodie.RegularPrice != 59.99 {
		t.Fatalf("unexpected prices: %v / %v", hoodie.Price, hoodie.RegularPrice)
	}
	if hoodie.Category != "apparel" || hoodie.CategoryName != "Apparel" {
		t.Fatalf("unexpected category: %s / %s", hoodie.Category, hoodie.CategoryName)
	}
	if hoodie.PrimaryImage != "https://cdn.example.com/hoodie.jpg" {
		t.Fatalf("unexpected primary image: %s", hoodie.PrimaryImage)
	}
	if !hoodie.InStock || hoodie.StockQuantity == nil || *hoodie.StockQuantity != 7 {
		t.Fatalf("unexpected stock: inStock=%v qty=%v", hoodie.InStock, hoodie.StockQuantity)
	}
	if len(hoodie.Tags) != 1 || hoodie.Tags[0] != "warm" {
		t.Fatalf("unexpected tags: %v", hoodie.Tags)
	}

	sticker := products[1]
	if sticker.Price != 0 {
		t.Fatalf("unparseable price should map to 0, got %v", sticker.Price)
	}
	if sticker.InStock {
		t.Fatal("outofstock product mapped as in stock")
	}
	if sticker.StockQuantity != nil {
		t.Fatalf("null stock_quantity should stay nil, got %v", *sticker.StockQuantity)
	}
	if sticker.Category != "uncategorized" || sticker.CategoryName != "Uncategorized" {
		t.Fatalf("unexpected default category: %s / %s", sticker.Category, sticker.CategoryName)
	}
}

func TestProducts_FiltersByCategorySlug(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "name": "A", "categories": [{"name": "Apparel", "slug": "apparel"}]},
			{"id": 2, "name": "B", "categories": [{"name": "Mugs", "slug": "mugs"}]}
		]`)
	})

	products, err := client.Products(context.Background(), "mugs")
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "2" {
		t.Fatalf("expected only product 2, got %+v", products)
	}
}

func TestProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"code":"woocommerce_rest_product_invalid_id"}`)
	})

	_, err := client.Product(context.Background(), "999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProduct_CheckoutURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": 5, "name": "Mug", "price": "12.00", "stock_status": "instock"}`)
	})

	p, err := client.Product(context.Background(), "5")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	want := client.BaseURL() + "/cart/?add-to-cart=5"
	if p.CheckoutURL != want {
		t.Fatalf("checkout URL: got %s, want %s", p.CheckoutURL, want)
	}
}
