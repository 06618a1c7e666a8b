// Package wordpress is the upstream client for the WordPress/WooCommerce
// backend: product catalog, JWT auth, customer signup, and Contact Form 7
// delivery. The storefront never talks to WooCommerce directly from the
// browser; everything funnels through this client.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-gateway/internal/domain"
)

// Client talks to a single WordPress installation. Consumer key/secret are
// the WooCommerce REST credentials used server-to-server.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	cf7FormID      string
	httpClient     *http.Client
	logger         *log.Logger
}

func NewClient(baseURL, consumerKey, consumerSecret, cf7FormID string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		cf7FormID:      cf7FormID,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		logger:         logger,
	}
}

// BaseURL returns the normalized upstream URL, exposed to the frontend via
// the public config endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type wcImage struct {
	Src string `json:"src"`
}

type wcCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type wcTag struct {
	Name string `json:"name"`
}

type wcProduct struct {
	ID               json.Number  `json:"id"`
	SKU              string       `json:"sku"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	Price            string       `json:"price"`
	RegularPrice     string       `json:"regular_price"`
	SalePrice        string       `json:"sale_price"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"short_description"`
	Images           []wcImage    `json:"images"`
	Categories       []wcCategory `json:"categories"`
	StockStatus      string       `json:"stock_status"`
	StockQuantity    *int         `json:"stock_quantity"`
	ManageStock      bool         `json:"manage_stock"`
	Featured         bool         `json:"featured"`
	Tags             []wcTag      `json:"tags"`
}

// Products lists published products, optionally filtered to a category slug.
func (c *Client) Products(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	req, err := c.newWCRequest(ctx, http.MethodGet, "/wp-json/wc/v3/products?per_page=100&status=publish", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: upstream status %d", resp.StatusCode)
	}

	var wcProducts []wcProduct
	if err := json.NewDecoder(resp.Body).Decode(&wcProducts); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(wcProducts))
	for _, p := range wcProducts {
		mapped := c.mapProduct(p)
		if categorySlug != "" && !hasCategory(mapped, categorySlug) {
			continue
		}
		products = append(products, mapped)
	}
	return products, nil
}

// Product fetches one product by its WooCommerce ID.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	req, err := c.newWCRequest(ctx, http.MethodGet, "/wp-json/wc/v3/products/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		return nil, fmt.Errorf("fetch product %s: upstream status %d", id, resp.StatusCode)
	}

	var p wcProduct
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	mapped := c.mapProduct(p)
	return &mapped, nil
}

func (c *Client) mapProduct(p wcProduct) domain.Product {
	categories := make([]domain.ProductCategory, 0, len(p.Categories))
	for _, cat := range p.Categories {
		categories = append(categories, domain.ProductCategory{Name: cat.Name, Slug: cat.Slug})
	}
	primaryCategory := "uncategorized"
	primaryCategoryName := "Uncategorized"
	if len(categories) > 0 {
		primaryCategory = categories[0].Slug
		primaryCategoryName = categories[0].Name
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Src != "" {
			images = append(images, img.Src)
		}
	}
	primaryImage := ""
	if len(images) > 0 {
		primaryImage = images[0]
	}

	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, tag.Name)
	}

	id := p.ID.String()
	return domain.Product{
		ID:               id,
		SKU:              p.SKU,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            parsePrice(p.Price),
		RegularPrice:     parsePrice(p.RegularPrice),
		SalePrice:        parsePrice(p.SalePrice),
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		PrimaryImage:     primaryImage,
		Images:           images,
		Category:         primaryCategory,
		CategoryName:     primaryCategoryName,
		Categories:       categories,
		InStock:          p.StockStatus == "instock",
		StockQuantity:    p.StockQuantity,
		ManageStock:      p.ManageStock,
		Featured:         p.Featured,
		Tags:             tags,
		CheckoutURL:      fmt.Sprintf("%s/cart/?add-to-cart=%s", c.baseURL, id),
	}
}

func (c *Client) newWCRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	return req, nil
}

func hasCategory(p domain.Product, slug string) bool {
	for _, cat := range p.Categories {
		if cat.Slug == slug {
			return true
		}
	}
	return false
}

// WooCommerce serves prices as strings; unparseable values become zero.
func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
