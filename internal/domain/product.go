package domain

// ProductCategory is a category reference carried on a product.
type ProductCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is the storefront view of a catalog product, mapped from the
// WooCommerce REST shape.
type Product struct {
	ID               string            `json:"id"`
	SKU              string            `json:"sku"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Price            float64           `json:"price"`
	RegularPrice     float64           `json:"regularPrice"`
	SalePrice        float64           `json:"salePrice"`
	Description      string            `json:"description,omitempty"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	PrimaryImage     string            `json:"primaryImage"`
	Images           []string          `json:"images"`
	Category         string            `json:"category"`
	CategoryName     string            `json:"categoryName"`
	Categories       []ProductCategory `json:"categories"`
	InStock          bool              `json:"inStock"`
	// StockQuantity is nil when the shop does not manage stock for the
	// product, meaning quantity is unlimited from the cart's point of view.
	StockQuantity *int     `json:"stockQuantity"`
	ManageStock   bool     `json:"manageStock"`
	Featured      bool     `json:"featured"`
	Tags          []string `json:"tags,omitempty"`
	CheckoutURL   string   `json:"checkoutUrl"`
}
