package v1

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agency-portal/dto"
)

// MaxUploadSize bounds documents and ticket attachments
const MaxUploadSize = 32 << 20

// readUpload opens the multipart file of field; the caller closes it
func readUpload(c *gin.Context, field string) (dto.Upload, io.Closer, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	header, err := c.FormFile(field)
	if err != nil {
		return dto.Upload{}, nil, fmt.Errorf("%s: %w", field, err)
	}
	file, err := header.Open()
	if err != nil {
		return dto.Upload{}, nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return dto.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

// serveFile streams a stored object as a download and closes it
func serveFile(c *gin.Context, name, contentType string, size int64, body io.ReadCloser) {
	defer body.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": name}),
	})
}
