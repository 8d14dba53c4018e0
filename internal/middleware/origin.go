package middleware

import (
	"github.com/gin-gonic/gin"

	"audittrail/internal/audit"
)

// AuditOrigin copies the authenticated user and the client address into the
// request context so that audit entries written during the request carry
// them. It must run after AuthMiddleware for the actor to be known.
func AuditOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := audit.Origin{IPAddress: c.ClientIP()}
		if userID, ok := c.Get(userIDKey); ok {
			origin.ActorID, _ = userID.(string)
		}

		c.Request = c.Request.WithContext(audit.WithOrigin(c.Request.Context(), origin))
		c.Next()
	}
}
