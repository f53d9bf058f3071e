package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"relove/internal/utils"
	pkgutils "relove/pkg/utils"
)

const (
	// AuthorizationHeader authentication header name
	AuthorizationHeader = "Authorization"
	// BearerPrefix Bearer prefix
	BearerPrefix = "Bearer "
	// UserIDKey context key holding the authenticated user id
	UserIDKey = "user_id"
	// UserEmailKey context key holding the authenticated email
	UserEmailKey = "user_email"
	// UserRoleKey context key holding the authenticated role
	UserRoleKey = "user_role"
)

// TokenValidator validates a bearer token and returns its claims
type TokenValidator func(ctx context.Context, token string) (*utils.JWTClaims, error)

// Auth authentication middleware. Requests without a valid bearer
// token never reach the handler.
func Auth(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			pkgutils.ErrorFrom(c, pkgutils.ErrUnauthenticated)
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := validate(c.Request.Context(), token)
		if err != nil {
			pkgutils.ErrorFrom(c, pkgutils.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}
