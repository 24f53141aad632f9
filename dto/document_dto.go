package dto

import "io"

// Upload is a file received from a multipart form
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SignDocumentRequest carries the drawn or typed signature
type SignDocumentRequest struct {
	SignatureData string `json:"signature_data" binding:"required"`
}
