package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// TicketController handles support tickets and their attachments
type TicketController struct {
	tickets  *services.TicketService
	projects *services.ProjectService
}

func NewTicketController(tickets *services.TicketService, projects *services.ProjectService) *TicketController {
	return &TicketController{tickets: tickets, projects: projects}
}

func (tc *TicketController) RegisterAdminRoutes(admin *gin.RouterGroup) {
	tickets := admin.Group("/tickets")
	{
		tickets.GET("", tc.ListAllTickets)
		tickets.GET("/:id", tc.GetTicket)
		tickets.PATCH("/:id/status", tc.UpdateTicketStatus)
		tickets.DELETE("/:id", tc.DeleteTicket)
		tickets.GET("/:id/attachments/:attachmentId", tc.DownloadAttachment)
	}
}

func (tc *TicketController) RegisterClientRoutes(app *gin.RouterGroup) {
	tickets := app.Group("/tickets")
	{
		tickets.GET("", tc.ListProjectTickets)
		tickets.POST("", tc.CreateTicket)
		tickets.GET("/:id", tc.GetTicket)
		tickets.POST("/:id/attachments", tc.UploadAttachment)
		tickets.GET("/:id/attachments/:attachmentId", tc.DownloadAttachment)
	}
}

// ListAllTickets is the admin queue, ?statut= narrows it
func (tc *TicketController) ListAllTickets(c *gin.Context) {
	var filter dto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	tickets, err := tc.tickets.ListAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve tickets", err)
		return
	}
	success(c, http.StatusOK, tickets)
}

func (tc *TicketController) ListProjectTickets(c *gin.Context) {
	var filter dto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	project, ok := activeProject(c, tc.projects)
	if !ok {
		return
	}
	tickets, err := tc.tickets.ListForProject(c.Request.Context(), project.ID, filter)
	if err != nil {
		respondError(c, "Failed to retrieve tickets", err)
		return
	}
	success(c, http.StatusOK, tickets)
}

func (tc *TicketController) GetTicket(c *gin.Context) {
	ticket, err := tc.tickets.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Ticket not found or access denied", err)
		return
	}
	success(c, http.StatusOK, ticket)
}

func (tc *TicketController) CreateTicket(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, ok := activeProject(c, tc.projects)
	if !ok {
		return
	}
	ticket, err := tc.tickets.Create(c.Request.Context(), principal(c), project.ID, req)
	if err != nil {
		respondError(c, "Failed to create ticket", err)
		return
	}
	success(c, http.StatusCreated, ticket)
}

func (tc *TicketController) UpdateTicketStatus(c *gin.Context) {
	var req dto.TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ticket, err := tc.tickets.UpdateStatus(c.Request.Context(), c.Param("id"), req.Statut)
	if err != nil {
		respondError(c, "Failed to update ticket status", err)
		return
	}
	success(c, http.StatusOK, ticket)
}

func (tc *TicketController) DeleteTicket(c *gin.Context) {
	if err := tc.tickets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete ticket", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Ticket deleted successfully",
	})
}

// UploadAttachment expects a multipart form with a "file" field
func (tc *TicketController) UploadAttachment(c *gin.Context) {
	upload, file, err := readUpload(c, "file")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	attachment, err := tc.tickets.AddAttachment(c.Request.Context(), principal(c), c.Param("id"), upload)
	if err != nil {
		respondError(c, "Failed to upload attachment", err)
		return
	}
	success(c, http.StatusCreated, attachment)
}

func (tc *TicketController) DownloadAttachment(c *gin.Context) {
	attachment, body, err := tc.tickets.OpenAttachment(c.Request.Context(), principal(c), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		respondError(c, "Attachment not found", err)
		return
	}
	serveFile(c, attachment.FileName, attachment.ContentType, attachment.FileSize, body)
}
