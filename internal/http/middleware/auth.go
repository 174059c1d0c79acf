package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tourmate/internal/auth"
	"tourmate/internal/domain"
)

const actorKey = "actor"

// Auth resolves the Bearer token into an actor on the context. A missing or
// invalid token leaves the actor anonymous; the services decide which
// operations require login, so this middleware never aborts.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			if claims, err := auth.ParseToken(jwtSecret, raw); err == nil {
				c.Set(actorKey, domain.Actor{Username: claims.Username, Role: claims.Role})
			}
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor, or the zero (anonymous) actor.
func GetActor(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(domain.Actor); ok {
			return a
		}
	}
	return domain.Actor{}
}
