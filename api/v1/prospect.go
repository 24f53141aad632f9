package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// ProspectController handles the sales pipeline
type ProspectController struct {
	prospects *services.ProspectService
}

func NewProspectController(prospects *services.ProspectService) *ProspectController {
	return &ProspectController{prospects: prospects}
}

func (pc *ProspectController) RegisterRoutes(admin *gin.RouterGroup) {
	prospects := admin.Group("/prospects")
	{
		prospects.GET("", pc.ListProspects)
		prospects.POST("", pc.CreateProspect)
		prospects.GET("/:id", pc.GetProspect)
		prospects.PUT("/:id", pc.UpdateProspect)
		prospects.PATCH("/:id/status", pc.UpdateProspectStatus)
		prospects.POST("/:id/convert", pc.ConvertProspect)
		prospects.DELETE("/:id", pc.DeleteProspect)
	}
}

// ListProspects supports ?filter=active|all, ?statut= and ?search=
func (pc *ProspectController) ListProspects(c *gin.Context) {
	var filter dto.ProspectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	prospects, err := pc.prospects.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve prospects", err)
		return
	}
	success(c, http.StatusOK, prospects)
}

func (pc *ProspectController) GetProspect(c *gin.Context) {
	prospect, err := pc.prospects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Prospect not found", err)
		return
	}
	success(c, http.StatusOK, prospect)
}

func (pc *ProspectController) CreateProspect(c *gin.Context) {
	var req dto.ProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prospect, err := pc.prospects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create prospect", err)
		return
	}
	success(c, http.StatusCreated, prospect)
}

func (pc *ProspectController) UpdateProspect(c *gin.Context) {
	var req dto.ProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prospect, err := pc.prospects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update prospect", err)
		return
	}
	success(c, http.StatusOK, prospect)
}

func (pc *ProspectController) UpdateProspectStatus(c *gin.Context) {
	var req dto.ProspectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prospect, err := pc.prospects.UpdateStatus(c.Request.Context(), c.Param("id"), req.Statut)
	if err != nil {
		respondError(c, "Failed to update prospect status", err)
		return
	}
	success(c, http.StatusOK, prospect)
}

func (pc *ProspectController) ConvertProspect(c *gin.Context) {
	var req dto.ConvertProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := pc.prospects.Convert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to convert prospect", err)
		return
	}
	success(c, http.StatusCreated, resp)
}

func (pc *ProspectController) DeleteProspect(c *gin.Context) {
	if err := pc.prospects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete prospect", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Prospect deleted successfully",
	})
}
