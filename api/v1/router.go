package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/agency-portal/middleware"
	"github.com/agency-portal/models"
	"github.com/agency-portal/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, svc *services.Services, secureCookies bool) {
	router.Use(middleware.AuthMiddleware(svc.Auth))

	// Health check endpoint
	router.GET("/health", HealthCheck)

	NewAuthController(svc.Auth, secureCookies).RegisterRoutes(router)

	projects := NewProjectController(svc.Projects, svc.Roadmap)
	work := NewWorkController(svc.Milestones, svc.Tasks, svc.Projects)
	tickets := NewTicketController(svc.Tickets, svc.Projects)
	documents := NewDocumentController(svc.Documents, svc.Projects)
	engagement := NewEngagementController(svc.Comments, svc.Reviews, svc.Projects)
	notifications := NewNotificationController(svc.Notifications)

	// Admin portal
	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		NewDashboardController(svc.Dashboard).RegisterRoutes(admin)
		NewClientController(svc.Clients).RegisterRoutes(admin)
		NewProspectController(svc.Prospects).RegisterRoutes(admin)
		projects.RegisterAdminRoutes(admin)
		work.RegisterAdminRoutes(admin)
		tickets.RegisterAdminRoutes(admin)
		documents.RegisterAdminRoutes(admin)
		engagement.RegisterAdminRoutes(admin)
		notifications.RegisterRoutes(admin)
	}

	// Client portal; ?project= selects the active project
	app := router.Group("/app")
	app.Use(middleware.RequireRole(models.RoleClient))
	{
		projects.RegisterClientRoutes(app)
		work.RegisterClientRoutes(app)
		tickets.RegisterClientRoutes(app)
		documents.RegisterClientRoutes(app)
		engagement.RegisterClientRoutes(app)
		notifications.RegisterRoutes(app)
	}
}
