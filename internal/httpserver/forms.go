package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/wordpress"
)

func (h *handlers) subscribeNewsletter(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	already, err := h.deps.Forms.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Printf("newsletter: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "subscription unavailable"})
		return
	}

	message := "Thanks for subscribing!"
	if already {
		message = "You are already subscribed."
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "alreadySubscribed": already})
}

func (h *handlers) sendContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email and a message are required"})
		return
	}

	err := h.deps.Forms.SendContact(c.Request.Context(), wordpress.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		var rejected *wordpress.ContactRejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejected.Message})
			return
		}
		h.logger.Printf("contact: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "contact form unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your message has been sent."})
}
