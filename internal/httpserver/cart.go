package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/notify"
	"storefront-gateway/internal/store/cart"
)

type cartStateResponse struct {
	Items  []domain.CartLineItem `json:"items"`
	Total  float64               `json:"total"`
	Count  int                   `json:"count"`
	Notice string                `json:"notice,omitempty"`
}

// cartFor builds the session-scoped cart store and the per-request
// notification sink whose latest message becomes the response notice.
func (h *handlers) cartFor(c *gin.Context) (*cart.Store, *notify.Latest) {
	sink := &notify.Latest{}
	return cart.New(h.deps.Store, cartKey(sessionID(c)), sink, h.logger), sink
}

func cartState(c *gin.Context, s *cart.Store, sink *notify.Latest) cartStateResponse {
	ctx := c.Request.Context()
	items := s.Items(ctx)
	if items == nil {
		items = []domain.CartLineItem{}
	}
	out := cartStateResponse{
		Items: items,
		Total: s.Total(ctx),
		Count: s.Count(ctx),
	}
	if msg, ok := sink.Message(); ok {
		out.Notice = msg
	}
	return out
}

func (h *handlers) getCart(c *gin.Context) {
	s, sink := h.cartFor(c)
	c.JSON(http.StatusOK, cartState(c, s, sink))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	product, err := h.deps.Catalog.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Printf("add to cart: fetch product %s: %v", req.ProductID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}

	input := domain.CartItemInput{
		ProductID:    product.ID,
		Name:         product.Name,
		UnitPrice:    product.Price,
		ImageURL:     product.PrimaryImage,
		StockCeiling: stockCeiling(product),
	}

	// One add per unit requested, stopping at the stock ceiling. A partial
	// add is still a success; the notice reports the limit.
	s, sink := h.cartFor(c)
	var result cart.AddResult
	added := 0
	for range qty {
		result, err = s.Add(c.Request.Context(), input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !result.Added {
			break
		}
		added++
	}

	state := cartState(c, s, sink)
	if added == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"added":  false,
			"reason": result.Reason,
			"notice": state.Notice,
			"items":  state.Items,
			"total":  state.Total,
			"count":  state.Count,
		})
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	s, sink := h.cartFor(c)
	s.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
	c.JSON(http.StatusOK, cartState(c, s, sink))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	s, sink := h.cartFor(c)
	s.Remove(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, cartState(c, s, sink))
}

func (h *handlers) clearCart(c *gin.Context) {
	s, _ := h.cartFor(c)
	s.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// stockCeiling derives the quantity cap from the catalog product. A managed
// stock level wins; an unmanaged product that is out of stock caps at zero;
// anything else is unlimited.
func stockCeiling(p *domain.Product) *int {
	if p.ManageStock && p.StockQuantity != nil {
		return p.StockQuantity
	}
	if !p.InStock {
		zero := 0
		return &zero
	}
	return nil
}
