package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"io.winapps.traveljournal/internal/auth"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "user_id"

// RequireAuth validates the bearer token and sets the user id in the context.
// Requests without a valid token are rejected before the handler runs.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, tokens)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth reads identity from the bearer token if one is present and valid.
// The request proceeds either way; an invalid token is treated as no token.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, tokens); ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// bearerUserID extracts and verifies the Authorization bearer token.
func bearerUserID(c *gin.Context, tokens *auth.TokenManager) (int64, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}

	// Check if header starts with "Bearer "
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return 0, false
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return 0, false
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// UserID returns the authenticated user's id from the context, false if the
// request carried no valid token.
func UserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}
