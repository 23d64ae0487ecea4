package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session cookie settings
const (
	SessionCookieName = "kapzar_session"
	SessionIDKey      = "session_id"
)

// Session assigns every request a session id, issuing a cookie on first
// contact. The id keys the server-side session store the cart lives in.
func Session(maxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(SessionCookieName, sid, maxAge, "/", "", secure, true)
		}
		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// GetSessionID returns the request's session id
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
