package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/middleware"
)

// Logout handles user logout
func (ac *AuthController) Logout(c *gin.Context) {
	// Clear the cookie by setting max-age to -1 (expired)
	c.SetCookie(
		middleware.TokenCookie,
		"",
		-1,
		"/",
		"",
		ac.secureCookies,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
