// Package cart implements the session cart: line items keyed by product ID
// with quantities bounded by the stock ceiling the catalog reported at
// mutation time.
package cart

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/storage"
)

// Reason explains a rejected add.
type Reason string

const (
	ReasonOutOfStock   Reason = "out_of_stock"
	ReasonLimitReached Reason = "limit_reached"
)

// AddResult reports whether an add mutated the cart and, if not, why.
type AddResult struct {
	Added  bool   `json:"added"`
	Reason Reason `json:"reason,omitempty"`
}

// Store owns one persisted cart collection. Every operation re-reads the
// freshest persisted value, mutates, and writes the whole collection back;
// nothing is cached between calls.
type Store struct {
	adapter storage.Adapter
	key     string
	sink    notify.Sink
	logger  *log.Logger
}

func New(adapter storage.Adapter, key string, sink notify.Sink, logger *log.Logger) *Store {
	if sink == nil {
		sink = notify.Discard{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{adapter: adapter, key: key, sink: sink, logger: logger}
}

// Items returns the current line items in insertion order.
func (s *Store) Items(ctx context.Context) []domain.CartLineItem {
	return storage.LoadList[domain.CartLineItem](ctx, s.adapter, s.key)
}

// Add puts one unit of the product into the cart. A repeated add increments
// the existing row and refreshes its stock ceiling from the input, so the
// cart converges toward current inventory without a background sync. Adds at
// or above the ceiling are refused outright, never capped.
func (s *Store) Add(ctx context.Context, in domain.CartItemInput) (AddResult, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return AddResult{}, domain.ErrMissingProductID
	}

	items := s.Items(ctx)
	idx := indexOf(items, in.ProductID)

	currentQty := 0
	if idx >= 0 {
		currentQty = items[idx].Quantity
	}

	if in.StockCeiling != nil && currentQty >= *in.StockCeiling {
		if *in.StockCeiling == 0 {
			s.sink.Notify(fmt.Sprintf("%s is out of stock", in.Name))
			return AddResult{Reason: ReasonOutOfStock}, nil
		}
		s.sink.Notify(fmt.Sprintf("Maximum available quantity (%d) already in cart", *in.StockCeiling))
		return AddResult{Reason: ReasonLimitReached}, nil
	}

	if idx >= 0 {
		items[idx].Quantity++
		items[idx].StockCeiling = in.StockCeiling
	} else {
		items = append(items, domain.CartLineItem{
			ProductID:    in.ProductID,
			Name:         in.Name,
			UnitPrice:    in.UnitPrice,
			ImageURL:     in.ImageURL,
			Quantity:     1,
			StockCeiling: in.StockCeiling,
		})
	}

	s.save(ctx, items)
	s.sink.Notify(fmt.Sprintf("%s added to cart", in.Name))
	return AddResult{Added: true}, nil
}

// UpdateQuantity sets a row to the desired quantity. Zero or less removes
// the row; a request above the stock ceiling is clamped, not refused, since
// it usually comes from a typed form field. Unknown product IDs are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	items := s.Items(ctx)
	idx := indexOf(items, productID)
	if idx < 0 {
		return
	}

	ceiling := items[idx].StockCeiling
	switch {
	case quantity <= 0:
		items = append(items[:idx], items[idx+1:]...)
	case ceiling != nil && quantity > *ceiling:
		s.sink.Notify(fmt.Sprintf("Only %d available", *ceiling))
		if *ceiling <= 0 {
			items = append(items[:idx], items[idx+1:]...)
		} else {
			items[idx].Quantity = *ceiling
		}
	default:
		items[idx].Quantity = quantity
	}

	s.save(ctx, items)
}

// Remove drops the row for productID if present.
func (s *Store) Remove(ctx context.Context, productID string) {
	items := s.Items(ctx)
	idx := indexOf(items, productID)
	if idx < 0 {
		return
	}
	items = append(items[:idx], items[idx+1:]...)
	s.save(ctx, items)
}

// Total is the sum of unit price times quantity over all rows.
func (s *Store) Total(ctx context.Context) float64 {
	var total float64
	for _, item := range s.Items(ctx) {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Count is the sum of quantities, not the number of rows.
func (s *Store) Count(ctx context.Context) int {
	count := 0
	for _, item := range s.Items(ctx) {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	if err := s.adapter.Delete(ctx, s.key); err != nil {
		s.logger.Printf("cart: clear %s: %v", s.key, err)
	}
}

// save persists the collection. Persistence failures are logged and
// swallowed: a cart that cannot be saved still works for the current call.
func (s *Store) save(ctx context.Context, items []domain.CartLineItem) {
	if err := storage.SaveList(ctx, s.adapter, s.key, items); err != nil {
		s.logger.Printf("cart: persist %s: %v", s.key, err)
	}
}

// indexOf compares product IDs as strings to tolerate mixed-type
// identifiers from different catalog sources.
func indexOf(items []domain.CartLineItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
