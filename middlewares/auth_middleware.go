package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-ordering/utils"
)

const (
	ContextAdminID      = "admin_id"
	ContextRestaurantID = "restaurant_id"
)

// AuthMiddleware accepts "Authorization: Bearer <token>". Browsers cannot set
// headers on a websocket handshake, so the token query parameter is accepted
// as well.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization token missing"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			utils.InfoLogger.WithField("ip", c.ClientIP()).Debugf("Rejected token: %v", err)
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextRestaurantID, claims.RestaurantID)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(c.Query("token"))
}

// RestaurantID returns the restaurant the authenticated admin manages.
func RestaurantID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextRestaurantID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func AdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextAdminID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
