package dto

import "github.com/agency-portal/models"

// ProspectFilter is the query of the prospects list
type ProspectFilter struct {
	// Filter is "active" (default) or "all"
	Filter string                `form:"filter" binding:"omitempty,oneof=active all"`
	Statut models.ProspectStatus `form:"statut" binding:"omitempty,oneof=nouveau contacte qualifie negocie converti perdu archive"`
	Search string                `form:"search"`
}

type ProspectRequest struct {
	Nom          string                `json:"nom" binding:"required"`
	Entreprise   string                `json:"entreprise"`
	Email        string                `json:"email" binding:"omitempty,email"`
	Telephone    string                `json:"telephone"`
	Source       string                `json:"source"`
	BudgetEstime float64               `json:"budget_estime" binding:"gte=0"`
	Notes        string                `json:"notes"`
	Statut       models.ProspectStatus `json:"statut" binding:"omitempty,oneof=nouveau contacte qualifie negocie converti perdu archive"`
}

type ProspectStatusRequest struct {
	Statut models.ProspectStatus `json:"statut" binding:"required,oneof=nouveau contacte qualifie negocie converti perdu archive"`
}

// ConvertProspectRequest describes the project opened for the converted prospect
type ConvertProspectRequest struct {
	Titre       string  `json:"titre" binding:"required"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget" binding:"gte=0"`
}

type ConvertProspectResponse struct {
	Prospect models.Prospect `json:"prospect"`
	Client   models.Client   `json:"client"`
	Project  models.Project  `json:"project"`
}
