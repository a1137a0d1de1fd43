package api

import (
	"log"
	"net/http"
	"strings"

	"smartstudy/internal/view"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// sessionIDKey is where the view session's id lives inside the cookie
	// session. The cookie carries nothing else.
	sessionIDKey = "sessionID"
	// sessionContextKey is where the resolved *view.Session lives in the
	// gin context.
	sessionContextKey = "viewSession"
)

// CORSMiddleware adds CORS headers for the frontend origin.
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	origin := strings.TrimSuffix(frontendURL, "/")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SessionMiddleware resolves the request's view session, creating one when
// the cookie is missing or names a session the registry no longer holds,
// and stores it in the gin context for the handlers.
func SessionMiddleware(manager *view.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := sessions.Default(c)

		var vs *view.Session
		if id, ok := cookie.Get(sessionIDKey).(string); ok {
			vs, _ = manager.Get(id)
		}
		if vs == nil {
			vs = manager.Create()
			cookie.Set(sessionIDKey, vs.ID)
			if err := cookie.Save(); err != nil {
				log.Printf("ERROR: failed to save session cookie: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
				return
			}
		}

		vs.Touch()
		c.Set(sessionContextKey, vs)
		c.Next()
	}
}
