package middleware

import (
	"strings"

	"rentease-backend/services"

	"github.com/gin-gonic/gin"
)

const (
	actorIDKey   = "actor_id"
	actorRoleKey = "actor_role"
)

// ActorContext lifts the staff identity supplied by the session layer out of
// the request headers. The values are trusted as-is; authentication happens
// upstream of this service.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("X-Staff-ID")); id != "" {
			c.Set(actorIDKey, id)
			c.Set(actorRoleKey, strings.TrimSpace(c.GetHeader("X-Staff-Role")))
		}
		c.Next()
	}
}

// ActorFromContext returns the request's actor, or false when the session
// layer supplied none.
func ActorFromContext(c *gin.Context) (services.Actor, bool) {
	id := c.GetString(actorIDKey)
	if id == "" {
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: c.GetString(actorRoleKey)}, true
}
