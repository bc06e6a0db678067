package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/internal/service/auth"
)

const ownerKey = "owner"

// SessionAuth resolves the session token to an owner before any handler that
// touches the ledger runs. Requests without a valid session short-circuit
// with 401.
func SessionAuth(service auth.AuthUseCase, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		owner, err := service.Whoami(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func sessionOwner(c *gin.Context) string {
	return c.GetString(ownerKey)
}
