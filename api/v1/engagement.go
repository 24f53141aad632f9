package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// EngagementController handles client comments and reviews
type EngagementController struct {
	comments *services.CommentService
	reviews  *services.ReviewService
	projects *services.ProjectService
}

func NewEngagementController(comments *services.CommentService, reviews *services.ReviewService, projects *services.ProjectService) *EngagementController {
	return &EngagementController{comments: comments, reviews: reviews, projects: projects}
}

func (ec *EngagementController) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/comments", ec.ListComments)
	admin.DELETE("/comments/:id", ec.DeleteComment)
	admin.GET("/reviews", ec.ListReviews)
}

func (ec *EngagementController) RegisterClientRoutes(app *gin.RouterGroup) {
	app.GET("/comments", ec.ListComments)
	app.POST("/comments", ec.CreateComment)
	app.GET("/review", ec.GetReviewStatus)
	app.POST("/review", ec.SubmitReview)
}

// ListComments needs exactly one of ?task_id= and ?milestone_id=
func (ec *EngagementController) ListComments(c *gin.Context) {
	var q dto.CommentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	comments, err := ec.comments.List(c.Request.Context(), principal(c), q)
	if err != nil {
		respondError(c, "Failed to retrieve comments", err)
		return
	}
	success(c, http.StatusOK, comments)
}

func (ec *EngagementController) CreateComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := ec.comments.Create(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, "Failed to post comment", err)
		return
	}
	success(c, http.StatusCreated, comment)
}

func (ec *EngagementController) DeleteComment(c *gin.Context) {
	if err := ec.comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete comment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Comment deleted successfully",
	})
}

func (ec *EngagementController) ListReviews(c *gin.Context) {
	reviews, err := ec.reviews.All(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve reviews", err)
		return
	}
	success(c, http.StatusOK, reviews)
}

func (ec *EngagementController) GetReviewStatus(c *gin.Context) {
	project, ok := activeProject(c, ec.projects)
	if !ok {
		return
	}
	status, err := ec.reviews.Status(c.Request.Context(), principal(c), project.ID)
	if err != nil {
		respondError(c, "Failed to retrieve review", err)
		return
	}
	success(c, http.StatusOK, status)
}

func (ec *EngagementController) SubmitReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, ok := activeProject(c, ec.projects)
	if !ok {
		return
	}
	review, err := ec.reviews.Submit(c.Request.Context(), principal(c), project.ID, req)
	if err != nil {
		respondError(c, "Failed to submit review", err)
		return
	}
	success(c, http.StatusCreated, review)
}
