package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlbbacs/quick-registration/internal/services"
)

// RequireAdmin gates administrative operations. The check consults only the
// session service's in-memory authenticated flag; the flag itself is
// restored from persisted state at startup.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if services.SessionServiceInstance == nil || !services.SessionServiceInstance.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
