package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/middleware"
	"github.com/agency-portal/services"
)

// AuthController handles login and the caller's own account
type AuthController struct {
	auth *services.AuthService
	// secureCookies marks the session cookie HTTPS only
	secureCookies bool
}

func NewAuthController(auth *services.AuthService, secureCookies bool) *AuthController {
	return &AuthController{auth: auth, secureCookies: secureCookies}
}

func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", ac.Login)
		authGroup.POST("/logout", ac.Logout)
		authGroup.GET("/me", middleware.RequireAuth(), ac.GetCurrentUser)
		authGroup.PUT("/password", middleware.RequireAuth(), ac.ChangePassword)
	}
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	authResponse, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Authentication failed", err)
		return
	}

	// Set token as HttpOnly cookie for the lifetime of the token
	c.SetCookie(
		middleware.TokenCookie,
		authResponse.Token,
		int(services.TokenTTL.Seconds()),
		"/",
		"",
		ac.secureCookies,
		true,
	)

	// Also return token in response body for clients that prefer Bearer auth
	success(c, http.StatusOK, authResponse)
}

// GetCurrentUser returns the currently authenticated user's profile
func (ac *AuthController) GetCurrentUser(c *gin.Context) {
	user, err := ac.auth.GetUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, "Failed to retrieve user profile", err)
		return
	}
	success(c, http.StatusOK, user)
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ac.auth.ChangePassword(c.Request.Context(), c.GetString("userId"), req); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password updated",
	})
}
