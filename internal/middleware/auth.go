package middleware

import (
	"net/http"
	"strings"

	"catering-service/internal/infra"

	"github.com/gin-gonic/gin"
)

// AuthRequired resolves the caller token through the identity collaborator
// and stores {userId, accountType} in the gin context. The core trusts this
// result for every downstream authorization check.
func AuthRequired(identity infra.IdentityInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := identity.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", id.UserID)
		c.Set("account_type", string(id.AccountType))
		c.Next()
	}
}
