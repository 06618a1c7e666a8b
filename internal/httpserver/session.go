package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "sf_session"
	sessionHeader = "X-Session-ID"

	// Carts and wishlists outlive browser sessions; six months matches how
	// long abandoned carts stay useful.
	sessionMaxAge = 180 * 24 * 60 * 60
)

// sessionID resolves the caller's session: an explicit header wins, then the
// cookie, and first-time visitors get a fresh ID set as a cookie on the way
// out.
func sessionID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(sessionHeader)); id != "" {
		return id
	}
	if id, err := c.Cookie(sessionCookie); err == nil && strings.TrimSpace(id) != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}

func cartKey(session string) string {
	return "cart:" + session
}

func wishlistKey(session string) string {
	return "wishlist:" + session
}
