package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/services"
)

// DocumentController handles shared files and signatures
type DocumentController struct {
	documents *services.DocumentService
	projects  *services.ProjectService
}

func NewDocumentController(documents *services.DocumentService, projects *services.ProjectService) *DocumentController {
	return &DocumentController{documents: documents, projects: projects}
}

func (dc *DocumentController) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/projects/:id/documents", dc.ListDocuments)
	admin.POST("/projects/:id/documents", dc.UploadDocument)
	admin.GET("/documents/:id", dc.DownloadDocument)
	admin.DELETE("/documents/:id", dc.DeleteDocument)
}

func (dc *DocumentController) RegisterClientRoutes(app *gin.RouterGroup) {
	app.GET("/documents", dc.ListClientDocuments)
	app.GET("/documents/:id", dc.DownloadDocument)
	app.POST("/documents/:id/sign", dc.SignDocument)
}

func (dc *DocumentController) ListDocuments(c *gin.Context) {
	documents, err := dc.documents.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to retrieve documents", err)
		return
	}
	success(c, http.StatusOK, documents)
}

func (dc *DocumentController) ListClientDocuments(c *gin.Context) {
	project, ok := activeProject(c, dc.projects)
	if !ok {
		return
	}
	documents, err := dc.documents.List(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, "Failed to retrieve documents", err)
		return
	}
	success(c, http.StatusOK, documents)
}

// UploadDocument expects a multipart form: file, nom, description, requires_signature
func (dc *DocumentController) UploadDocument(c *gin.Context) {
	upload, file, err := readUpload(c, "file")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	requiresSignature := false
	if v := c.PostForm("requires_signature"); v != "" {
		if requiresSignature, err = strconv.ParseBool(v); err != nil {
			badRequest(c, err)
			return
		}
	}

	document, err := dc.documents.Upload(c.Request.Context(), c.Param("id"), services.UploadRequest{
		Nom:               c.PostForm("nom"),
		Description:       c.PostForm("description"),
		RequiresSignature: requiresSignature,
		File:              upload,
	})
	if err != nil {
		respondError(c, "Failed to upload document", err)
		return
	}
	success(c, http.StatusCreated, document)
}

func (dc *DocumentController) DownloadDocument(c *gin.Context) {
	document, body, err := dc.documents.Open(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, "Document not found or access denied", err)
		return
	}
	serveFile(c, document.Nom, document.ContentType, document.FileSize, body)
}

func (dc *DocumentController) SignDocument(c *gin.Context) {
	var req dto.SignDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	document, err := dc.documents.Sign(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to sign document", err)
		return
	}
	success(c, http.StatusOK, document)
}

func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	if err := dc.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete document", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Document deleted successfully",
	})
}
