package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// WorkController handles milestones and tasks
type WorkController struct {
	milestones *services.MilestoneService
	tasks      *services.TaskService
	projects   *services.ProjectService
}

func NewWorkController(milestones *services.MilestoneService, tasks *services.TaskService, projects *services.ProjectService) *WorkController {
	return &WorkController{milestones: milestones, tasks: tasks, projects: projects}
}

func (wc *WorkController) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/projects/:id/milestones", wc.ListMilestones)
	admin.POST("/projects/:id/milestones", wc.CreateMilestone)
	milestones := admin.Group("/milestones")
	{
		milestones.PUT("/:id", wc.UpdateMilestone)
		milestones.PATCH("/:id/status", wc.UpdateMilestoneStatus)
		milestones.DELETE("/:id", wc.DeleteMilestone)
	}

	admin.GET("/projects/:id/tasks", wc.ListTasks)
	admin.POST("/projects/:id/tasks", wc.CreateTask)
	tasks := admin.Group("/tasks")
	{
		tasks.GET("/:id", wc.GetTask)
		tasks.PUT("/:id", wc.UpdateTask)
		tasks.PATCH("/:id/status", wc.UpdateTaskStatus)
		tasks.DELETE("/:id", wc.DeleteTask)
	}
}

func (wc *WorkController) RegisterClientRoutes(app *gin.RouterGroup) {
	app.GET("/tasks", wc.ListClientTasks)
}

func (wc *WorkController) ListMilestones(c *gin.Context) {
	milestones, err := wc.milestones.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to retrieve milestones", err)
		return
	}
	success(c, http.StatusOK, milestones)
}

func (wc *WorkController) CreateMilestone(c *gin.Context) {
	var req dto.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	milestone, err := wc.milestones.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to create milestone", err)
		return
	}
	success(c, http.StatusCreated, milestone)
}

func (wc *WorkController) UpdateMilestone(c *gin.Context) {
	var req dto.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	milestone, err := wc.milestones.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update milestone", err)
		return
	}
	success(c, http.StatusOK, milestone)
}

func (wc *WorkController) UpdateMilestoneStatus(c *gin.Context) {
	var req dto.WorkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	milestone, err := wc.milestones.UpdateStatus(c.Request.Context(), c.Param("id"), req.Statut)
	if err != nil {
		respondError(c, "Failed to update milestone status", err)
		return
	}
	success(c, http.StatusOK, milestone)
}

func (wc *WorkController) DeleteMilestone(c *gin.Context) {
	if err := wc.milestones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete milestone", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Milestone deleted successfully",
	})
}

// ListTasks supports ?statut= and ?milestone_id=
func (wc *WorkController) ListTasks(c *gin.Context) {
	var filter dto.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	tasks, err := wc.tasks.List(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		respondError(c, "Failed to retrieve tasks", err)
		return
	}
	success(c, http.StatusOK, tasks)
}

func (wc *WorkController) ListClientTasks(c *gin.Context) {
	var filter dto.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	project, ok := activeProject(c, wc.projects)
	if !ok {
		return
	}
	tasks, err := wc.tasks.List(c.Request.Context(), project.ID, filter)
	if err != nil {
		respondError(c, "Failed to retrieve tasks", err)
		return
	}
	success(c, http.StatusOK, tasks)
}

func (wc *WorkController) GetTask(c *gin.Context) {
	task, err := wc.tasks.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Task not found", err)
		return
	}
	success(c, http.StatusOK, task)
}

func (wc *WorkController) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	task, err := wc.tasks.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to create task", err)
		return
	}
	success(c, http.StatusCreated, task)
}

func (wc *WorkController) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	task, err := wc.tasks.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update task", err)
		return
	}
	success(c, http.StatusOK, task)
}

func (wc *WorkController) UpdateTaskStatus(c *gin.Context) {
	var req dto.WorkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	task, err := wc.tasks.UpdateStatus(c.Request.Context(), c.Param("id"), req.Statut)
	if err != nil {
		respondError(c, "Failed to update task status", err)
		return
	}
	success(c, http.StatusOK, task)
}

func (wc *WorkController) DeleteTask(c *gin.Context) {
	if err := wc.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Task deleted successfully",
	})
}
