package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/wordpress"
)

type sessionResponse struct {
	Token     string         `json:"token,omitempty"`
	ExpiresAt int64          `json:"expiresAt,omitempty"`
	User      wordpress.User `json:"user"`
}

func (h *handlers) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.deps.Auth.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, wordpress.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		h.logger.Printf("login: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "login unavailable"})
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: session.User})
}

func (h *handlers) register(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required,min=8"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a password of at least 8 characters are required"})
		return
	}

	session, err := h.deps.Auth.Register(c.Request.Context(), wordpress.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, wordpress.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
		case errors.Is(err, wordpress.ErrUsernameExists):
			c.JSON(http.StatusConflict, gin.H{"error": "this username is taken"})
		default:
			h.logger.Printf("register: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "registration unavailable"})
		}
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: session.User})
}

func (h *handlers) refresh(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = strings.TrimSpace(req.Token)
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	fresh, expiresAt, err := h.deps.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, wordpress.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired or invalid"})
			return
		}
		h.logger.Printf("refresh: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": fresh, "expiresAt": expiresAt})
}

// forgotPassword always answers the same way so callers cannot probe which
// emails have accounts.
func (h *handlers) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	h.deps.Auth.ForgotPassword(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "If an account exists for this email, a reset link has been sent."})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
