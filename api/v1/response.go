package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/middleware"
	"github.com/agency-portal/services"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request",
		"error":   err.Error(),
	})
}

// respondError maps service errors onto the error envelope
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		slog.Error(message,
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err))
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

// principal returns the caller; routes are mounted behind the role gate so it is always set
func principal(c *gin.Context) dto.Principal {
	p, _ := middleware.CurrentPrincipal(c)
	return p
}
