package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medcare-api/pkg/helpers"
	"medcare-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth extracts the bearer token from the Authorization header, verifies it,
// and injects the user ID into the Gin context. A missing token and an
// invalid or expired one both reject with 401; the messages differ so callers
// can tell which precondition failed.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
