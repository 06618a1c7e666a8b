// Package wishlist implements the session wishlist: unique product
// snapshots with membership toggling as the primary mutation.
package wishlist

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/storage"
)

// EntryInput is the caller-supplied product snapshot for an add or toggle.
type EntryInput struct {
	ProductID    string
	Name         string
	Price        float64
	RegularPrice float64
	SalePrice    float64
	ImageURL     string
}

// Store owns one persisted wishlist collection. Like the cart, every
// operation is a full load-mutate-save cycle with no caching across calls.
type Store struct {
	adapter storage.Adapter
	key     string
	sink    notify.Sink
	logger  *log.Logger
	now     func() time.Time
}

func New(adapter storage.Adapter, key string, sink notify.Sink, logger *log.Logger) *Store {
	if sink == nil {
		sink = notify.Discard{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{adapter: adapter, key: key, sink: sink, logger: logger, now: time.Now}
}

// Items returns the current entries in insertion order.
func (s *Store) Items(ctx context.Context) []domain.WishlistEntry {
	return storage.LoadList[domain.WishlistEntry](ctx, s.adapter, s.key)
}

// Has reports membership by product ID.
func (s *Store) Has(ctx context.Context, productID string) bool {
	return indexOf(s.Items(ctx), productID) >= 0
}

// Add inserts an entry stamped with the current time. Adding a product that
// is already present does nothing, not even a notification.
func (s *Store) Add(ctx context.Context, in EntryInput) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return domain.ErrMissingProductID
	}
	items := s.Items(ctx)
	if indexOf(items, in.ProductID) >= 0 {
		return nil
	}
	items = append(items, s.entryFrom(in))
	s.save(ctx, items)
	s.sink.Notify(fmt.Sprintf("%s added to wishlist", in.Name))
	return nil
}

// Remove drops the entry if present. Removing an absent product still
// succeeds.
func (s *Store) Remove(ctx context.Context, productID string) {
	items := s.Items(ctx)
	idx := indexOf(items, productID)
	if idx < 0 {
		return
	}
	items = append(items[:idx], items[idx+1:]...)
	s.save(ctx, items)
	s.sink.Notify("Removed from wishlist")
}

// Toggle flips membership in a single read-modify-write and returns the
// resulting state: true when the product was added, false when removed.
func (s *Store) Toggle(ctx context.Context, in EntryInput) (bool, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return false, domain.ErrMissingProductID
	}
	items := s.Items(ctx)
	idx := indexOf(items, in.ProductID)
	if idx >= 0 {
		items = append(items[:idx], items[idx+1:]...)
		s.save(ctx, items)
		s.sink.Notify(fmt.Sprintf("%s removed from wishlist", in.Name))
		return false, nil
	}
	items = append(items, s.entryFrom(in))
	s.save(ctx, items)
	s.sink.Notify(fmt.Sprintf("%s added to wishlist", in.Name))
	return true, nil
}

// Count is the number of entries.
func (s *Store) Count(ctx context.Context) int {
	return len(s.Items(ctx))
}

// Clear empties the wishlist.
func (s *Store) Clear(ctx context.Context) {
	if err := s.adapter.Delete(ctx, s.key); err != nil {
		s.logger.Printf("wishlist: clear %s: %v", s.key, err)
	}
}

// Deduplicate rebuilds the collection keeping the first occurrence of each
// product ID. Earlier releases generated entry IDs under more than one
// scheme, so stored lists may carry duplicates; this lets them self-heal on
// load. Persists only when something was actually removed.
func (s *Store) Deduplicate(ctx context.Context) ([]domain.WishlistEntry, int) {
	items := s.Items(ctx)
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.WishlistEntry, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		unique = append(unique, item)
	}
	removed := len(items) - len(unique)
	if removed > 0 {
		s.logger.Printf("wishlist: removed %d duplicate entries from %s", removed, s.key)
		s.save(ctx, unique)
	}
	return unique, removed
}

func (s *Store) entryFrom(in EntryInput) domain.WishlistEntry {
	return domain.WishlistEntry{
		ProductID:    in.ProductID,
		Name:         in.Name,
		Price:        in.Price,
		RegularPrice: in.RegularPrice,
		SalePrice:    in.SalePrice,
		ImageURL:     in.ImageURL,
		AddedAt:      s.now().UTC(),
	}
}

func (s *Store) save(ctx context.Context, items []domain.WishlistEntry) {
	if err := storage.SaveList(ctx, s.adapter, s.key, items); err != nil {
		s.logger.Printf("wishlist: persist %s: %v", s.key, err)
	}
}

func indexOf(items []domain.WishlistEntry, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
