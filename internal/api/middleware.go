package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/session"
	"taskboard/internal/util"
	"taskboard/pkg/metrics"
)

const sessionCookie = "session_id"

// SessionMiddleware resolves the session cookie once per request and stashes
// the authenticated username in the gin context. Requests without a live
// session pass through unauthenticated; each handler decides what that means.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err == nil && token != "" {
			username, err := sessions.Resolve(c.Request.Context(), token)
			if err == nil {
				c.Set("username", username)
				c.Set("session_token", token)
			}
		}
		c.Next()
	}
}

// currentUsername returns the session-derived username, if any.
func currentUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get("username")
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}

// JWTAuthMiddleware guards the JSON API with bearer tokens.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		accountID, err := util.ParseJWT(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// store account_id in context so handlers can use it
		c.Set("account_id", accountID)

		c.Next()
	}
}

// MetricsMiddleware records request durations by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
