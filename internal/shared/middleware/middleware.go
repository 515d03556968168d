package middleware

import (
	"strings"
	"time"

	"evently-client/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ContextIsAuth is true when the request carried a valid bearer token
	ContextIsAuth = "is_auth"
	// ContextUserID holds the authenticated user id
	ContextUserID = "user_id"
)

// TokenVerifier validates a bearer token and returns its user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// OptionalAuth validates a bearer token if present but never rejects the
// request. Resolvers decide whether authentication is required.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIsAuth, false)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.Next()
			return
		}

		userID, err := verifier.Verify(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextIsAuth, true)
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id, if any
func UserID(c *gin.Context) (string, bool) {
	if !c.GetBool(ContextIsAuth) {
		return "", false
	}
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// RequestLogger logs every request after it is served
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
