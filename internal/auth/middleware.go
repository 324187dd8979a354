package auth

import (
	"net/http"

	"msgboard/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "auth_session"

// RequireSession short-circuits with 401 unless the request carries a cookie
// for a live session. The session is stored in the gin context for handlers.
func (s *Service) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		sess, err := s.sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireRole enforces an exact role match on top of session presence.
// Missing session wins over wrong role: 401 before 403.
func (s *Service) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			token, err := c.Cookie(s.cookieName)
			if err != nil || token == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			sess, err = s.sessions.Get(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Set(sessionContextKey, sess)
		}
		if sess.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// SessionFromContext retrieves the session stashed by RequireSession.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}
