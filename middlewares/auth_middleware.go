package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/restohub/restopos/utils"
)

// AuthMiddleware validates the bearer token and, when roles are given,
// rejects principals whose role is not in the list. super-admin passes
// every gate.
func AuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.RestaurantID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("restaurant context missing in token"))
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("restaurant_id", claims.RestaurantID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	if role == "super-admin" {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
