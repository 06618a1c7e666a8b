package domain

// CartLineItem is one row in a cart: a product snapshot plus its quantity.
type CartLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	ImageURL  string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	// StockCeiling is the maximum purchasable quantity as last reported by
	// the catalog. nil means unlimited; 0 means out of stock.
	StockCeiling *int `json:"stockQuantity"`
}

// CartItemInput is the caller-supplied product data for an add operation.
// Stock data comes from the catalog at call time; the cart never fetches it.
type CartItemInput struct {
	ProductID    string
	Name         string
	UnitPrice    float64
	ImageURL     string
	StockCeiling *int
}
