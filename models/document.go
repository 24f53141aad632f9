package models

import "time"

// Document is a file shared with the client, optionally awaiting an e-signature
type Document struct {
	Base
	ProjectID         string     `json:"projet_id" gorm:"column:projet_id;type:varchar(36);not null;index"`
	Nom               string     `json:"nom" gorm:"not null"`
	Description       string     `json:"description"`
	FilePath          string     `json:"file_path"`
	FileSize          int64      `json:"file_size"`
	ContentType       string     `json:"content_type"`
	RequiresSignature bool       `json:"requires_signature"`
	IsSigned          bool       `json:"is_signed"`
	SignatureData     string     `json:"signature_data,omitempty"`
	SignedAt          *time.Time `json:"signed_at"`
}

func (Document) TableName() string {
	return "documents"
}

// AwaitingSignature reports whether the client still has to sign
func (d Document) AwaitingSignature() bool {
	return d.RequiresSignature && !d.IsSigned
}
