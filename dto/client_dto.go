package dto

import "github.com/agency-portal/models"

// ClientRequest creates or replaces a client
type ClientRequest struct {
	Nom        string `json:"nom" binding:"required"`
	Entreprise string `json:"entreprise"`
	Email      string `json:"email" binding:"omitempty,email"`
	Telephone  string `json:"telephone"`
	Adresse    string `json:"adresse"`
	Notes      string `json:"notes"`
	// CreateAccount opens a client portal login for Email
	CreateAccount bool `json:"create_account"`
}

// ClientResponse carries the generated portal password once, right after creation
type ClientResponse struct {
	models.Client
	Password string `json:"password,omitempty"`
}
