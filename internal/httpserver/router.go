package httpserver

import (
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Store == nil {
		return nil, errors.New("httpserver: Deps.Store is required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 1 && deps.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	{
		api.GET("/config", h.publicConfig)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		api.GET("/cart", h.getCart)
		api.DELETE("/cart", h.clearCart)
		api.POST("/cart/items", h.addCartItem)
		api.PATCH("/cart/items/:productId", h.updateCartItem)
		api.DELETE("/cart/items/:productId", h.removeCartItem)

		api.GET("/wishlist", h.getWishlist)
		api.DELETE("/wishlist", h.clearWishlist)
		api.POST("/wishlist/toggle", h.toggleWishlist)
		api.POST("/wishlist/deduplicate", h.deduplicateWishlist)
		api.POST("/wishlist/items", h.addWishlistItem)
		api.DELETE("/wishlist/items/:productId", h.removeWishlistItem)

		api.POST("/checkout", h.checkout)

		api.POST("/auth/login", h.login)
		api.POST("/auth/register", h.register)
		api.POST("/auth/refresh", h.refresh)
		api.POST("/auth/forgot-password", h.forgotPassword)

		api.POST("/newsletter", h.subscribeNewsletter)
		api.POST("/contact", h.sendContact)
	}

	return router, nil
}

// handlers groups route handlers around shared dependencies.
type handlers struct {
	deps   Deps
	logger *log.Logger
}
