package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// ClientController handles the admin client directory
type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

func (cc *ClientController) RegisterRoutes(admin *gin.RouterGroup) {
	clients := admin.Group("/clients")
	{
		clients.GET("", cc.ListClients)
		clients.POST("", cc.CreateClient)
		clients.GET("/:id", cc.GetClient)
		clients.PUT("/:id", cc.UpdateClient)
		clients.DELETE("/:id", cc.DeleteClient)
	}
}

func (cc *ClientController) ListClients(c *gin.Context) {
	clients, err := cc.clients.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve clients", err)
		return
	}
	success(c, http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	client, err := cc.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Client not found", err)
		return
	}
	success(c, http.StatusOK, client)
}

// CreateClient adds a client; with create_account the generated password is returned once
func (cc *ClientController) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	client, err := cc.clients.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create client", err)
		return
	}
	success(c, http.StatusCreated, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	client, err := cc.clients.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update client", err)
		return
	}
	success(c, http.StatusOK, client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	if err := cc.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Client deleted successfully",
	})
}
