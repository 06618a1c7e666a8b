package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/store/wishlist"
)

func (h *handlers) wishlistFor(c *gin.Context) (*wishlist.Store, *notify.Latest) {
	sink := &notify.Latest{}
	return wishlist.New(h.deps.Store, wishlistKey(sessionID(c)), sink, h.logger), sink
}

// getWishlist reads the list, deduplicating stale entries on the way out so
// old duplicated state self-heals.
func (h *handlers) getWishlist(c *gin.Context) {
	s, _ := h.wishlistFor(c)
	items, _ := s.Deduplicate(c.Request.Context())
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *handlers) toggleWishlist(c *gin.Context) {
	product, ok := h.bindWishlistProduct(c)
	if !ok {
		return
	}

	s, sink := h.wishlistFor(c)
	inWishlist, err := s.Toggle(c.Request.Context(), wishlistInput(product))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"inWishlist": inWishlist, "count": s.Count(c.Request.Context())}
	if msg, ok := sink.Message(); ok {
		resp["notice"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	product, ok := h.bindWishlistProduct(c)
	if !ok {
		return
	}

	s, sink := h.wishlistFor(c)
	if err := s.Add(c.Request.Context(), wishlistInput(product)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"count": s.Count(c.Request.Context())}
	if msg, ok := sink.Message(); ok {
		resp["notice"] = msg
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	s, sink := h.wishlistFor(c)
	s.Remove(c.Request.Context(), c.Param("productId"))

	resp := gin.H{"count": s.Count(c.Request.Context())}
	if msg, ok := sink.Message(); ok {
		resp["notice"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

// deduplicateWishlist is the explicit cleanup endpoint; reads already run
// the same pass implicitly.
func (h *handlers) deduplicateWishlist(c *gin.Context) {
	s, _ := h.wishlistFor(c)
	items, removed := s.Deduplicate(c.Request.Context())
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items), "removed": removed})
}

func (h *handlers) clearWishlist(c *gin.Context) {
	s, _ := h.wishlistFor(c)
	s.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *handlers) bindWishlistProduct(c *gin.Context) (*domain.Product, bool) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return nil, false
	}

	product, err := h.deps.Catalog.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return nil, false
		}
		h.logger.Printf("wishlist: fetch product %s: %v", req.ProductID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return nil, false
	}
	return product, true
}

func wishlistInput(p *domain.Product) wishlist.EntryInput {
	return wishlist.EntryInput{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.Price,
		RegularPrice: p.RegularPrice,
		SalePrice:    p.SalePrice,
		ImageURL:     p.PrimaryImage,
	}
}
