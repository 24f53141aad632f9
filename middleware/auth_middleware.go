package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

const (
	// TokenCookie carries the session token set at login
	TokenCookie = "access_token"

	principalKey = "principal"
)

// AuthMiddleware resolves the caller from the session cookie or a Bearer header.
// A missing or invalid token leaves the request anonymous; RequireRole turns it away.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		p := auth.Principal(claims)
		c.Set(principalKey, p)
		// Kept for handlers that only need the id or the role
		c.Set("userId", p.UserID)
		c.Set("role", string(p.Kind))
		c.Next()
	}
}

// tokenFromRequest prefers the cookie, then the Authorization header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// CurrentPrincipal returns the caller resolved by AuthMiddleware
func CurrentPrincipal(c *gin.Context) (dto.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return dto.Principal{}, false
	}
	p, ok := v.(dto.Principal)
	return p, ok
}
