package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/agency-portal/api/v1"
	"github.com/agency-portal/config"
	"github.com/agency-portal/middleware"
	"github.com/agency-portal/services"
)

// SetupRoutes builds the HTTP engine serving both portals' API
func SetupRoutes(svc *services.Services, cfg config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Public routes
	router.GET("/", v1.HealthCheck)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Route not found",
		})
	})

	// API routes
	v1.RegisterRoutes(router.Group("/api/v1"), svc, cfg.IsProduction())
	return router
}

// corsConfig allows the portal origins with credentials so the session cookie travels.
// Without configured origins every origin is echoed back.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}
