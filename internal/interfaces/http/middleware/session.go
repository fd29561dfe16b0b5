package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/infrastructure/config"
)

// SessionIDKey is the gin context key holding the cart session ID
const SessionIDKey = "session_id"

// SessionHeaderKey allows non-browser clients to carry the session
// without cookies
const SessionHeaderKey = "X-Session-ID"

// CartSession resolves the shopper's session ID. Resolution order is
// the X-Session-ID header, then the session cookie; when neither is
// present a new session is minted and set as a cookie so the cart
// survives page loads.
func CartSession(cfg config.CartConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeaderKey)

		if sessionID == "" {
			if cookie, err := c.Cookie(cfg.SessionCookie); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.SessionCookie, sessionID, cfg.SessionCookieAge, "/", "", false, true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Writer.Header().Set(SessionHeaderKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID resolved by CartSession, or an
// empty string when the middleware did not run
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
