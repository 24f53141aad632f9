package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/models"
)

// LoginPath is where anonymous callers are sent
const LoginPath = "/login"

// RequireRole lets the request through only for a caller with the given role.
// Anonymous callers are sent to the login page with the requested location kept,
// callers of the other role are sent to their own portal home.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			deny(c, http.StatusUnauthorized, "Authentication required", loginRedirect(c.Request))
			return
		}
		if p.Kind != role {
			deny(c, http.StatusForbidden, "Access denied for role "+string(p.Kind), p.Kind.Home())
			return
		}
		c.Next()
	}
}

// RequireAuth accepts any authenticated caller
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			deny(c, http.StatusUnauthorized, "Authentication required", loginRedirect(c.Request))
			return
		}
		c.Next()
	}
}

func loginRedirect(r *http.Request) string {
	return LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
}

// deny answers browsers with a 302 and API callers with the error envelope
func deny(c *gin.Context, status int, message, location string) {
	if wantsHTML(c.Request) {
		c.Redirect(http.StatusFound, location)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, gin.H{
		"status":   "error",
		"message":  message,
		"redirect": location,
	})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
