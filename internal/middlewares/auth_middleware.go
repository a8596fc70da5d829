package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medwatch/internal/utils"
)

// ClaimsKey is where Authenticate stores the verified token claims for
// downstream middleware and handlers.
const ClaimsKey = "claims"

// Authenticate rejects the request before the handler body runs unless a
// valid bearer token is presented.
func Authenticate(tokens utils.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format"})
			return
		}

		claims, err := utils.VerifyToken(tokens, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims set by Authenticate.
func ClaimsFromContext(c *gin.Context) (*utils.Claims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
