package middlewares

import (
	"crypto/subtle"

	"github.com/communityevents/backend/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

const adminHeader = "x-admin-passcode"

// RequireAdmin gates mutating event routes behind a shared-secret header.
// The comparison is constant-time, and an empty configured passcode denies
// every request (fail closed). Denials use the shared error envelope so the
// request id appears on 403s like every other error.
func RequireAdmin(passcode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(adminHeader)

		if passcode == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(passcode)) != 1 {
			handlers.RespondForbidden(c, "Invalid admin passcode")
			c.Abort()
			return
		}

		c.Next()
	}
}
