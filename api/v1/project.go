package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/services"
)

// ProjectController serves projects to both portals
type ProjectController struct {
	projects *services.ProjectService
	roadmap  *services.RoadmapService
}

func NewProjectController(projects *services.ProjectService, roadmap *services.RoadmapService) *ProjectController {
	return &ProjectController{projects: projects, roadmap: roadmap}
}

func (pc *ProjectController) RegisterAdminRoutes(admin *gin.RouterGroup) {
	projects := admin.Group("/projects")
	{
		projects.GET("", pc.ListProjects)
		projects.POST("", pc.CreateProject)
		projects.GET("/:id", pc.GetProject)
		projects.PUT("/:id", pc.UpdateProject)
		projects.PATCH("/:id/status", pc.UpdateProjectStatus)
		projects.DELETE("/:id", pc.DeleteProject)
		projects.GET("/:id/stats", pc.GetProjectStats)
	}
}

func (pc *ProjectController) RegisterClientRoutes(app *gin.RouterGroup) {
	app.GET("/projects", pc.ListProjects)
	app.GET("/roadmap", pc.GetRoadmap)
}

// activeProject resolves ?project= for the client portal, defaulting to the most recent project.
// It writes the error response itself and reports whether the handler may go on.
func activeProject(c *gin.Context, projects *services.ProjectService) (models.Project, bool) {
	project, err := projects.Resolve(c.Request.Context(), principal(c), c.Query("project"))
	if err != nil {
		respondError(c, "Project not found or access denied", err)
		return models.Project{}, false
	}
	return project, true
}

// ListProjects returns every project for an admin, or only the caller's projects for a client
func (pc *ProjectController) ListProjects(c *gin.Context) {
	projects, err := pc.projects.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, "Failed to retrieve projects", err)
		return
	}
	success(c, http.StatusOK, projects)
}

func (pc *ProjectController) GetProject(c *gin.Context) {
	project, err := pc.projects.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Project not found or access denied", err)
		return
	}
	success(c, http.StatusOK, project)
}

func (pc *ProjectController) GetProjectStats(c *gin.Context) {
	stats, err := pc.projects.Stats(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to retrieve project stats", err)
		return
	}
	success(c, http.StatusOK, stats)
}

func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := pc.projects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create project", err)
		return
	}
	success(c, http.StatusCreated, project)
}

func (pc *ProjectController) UpdateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := pc.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update project", err)
		return
	}
	success(c, http.StatusOK, project)
}

func (pc *ProjectController) UpdateProjectStatus(c *gin.Context) {
	var req dto.ProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := pc.projects.UpdateStatus(c.Request.Context(), c.Param("id"), req.Statut)
	if err != nil {
		respondError(c, "Failed to update project status", err)
		return
	}
	success(c, http.StatusOK, project)
}

func (pc *ProjectController) DeleteProject(c *gin.Context) {
	if err := pc.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}

// GetRoadmap returns the active project with its milestones and tasks
func (pc *ProjectController) GetRoadmap(c *gin.Context) {
	roadmap, err := pc.roadmap.Get(c.Request.Context(), principal(c), c.Query("project"))
	if err != nil {
		respondError(c, "Failed to load roadmap", err)
		return
	}
	success(c, http.StatusOK, roadmap)
}
