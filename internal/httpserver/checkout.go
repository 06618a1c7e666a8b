package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/wordpress"
)

// checkout converts the session cart into an upstream checkout redirect.
// The client may post explicit items; otherwise the persisted cart is used.
func (h *handlers) checkout(c *gin.Context) {
	var req struct {
		Items []wordpress.CheckoutItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
		return
	}

	items := req.Items
	if len(items) == 0 {
		s, _ := h.cartFor(c)
		for _, line := range s.Items(c.Request.Context()) {
			items = append(items, wordpress.CheckoutItem{ID: line.ProductID, Quantity: line.Quantity})
		}
	}

	url, err := h.deps.Checkout.CheckoutURL(items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkoutUrl": url})
}
