package dto

import "github.com/agency-portal/models"

type TicketRequest struct {
	Titre       string              `json:"titre" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Priorite    models.TaskPriority `json:"priorite" binding:"omitempty,oneof=basse moyenne haute"`
}

type TicketStatusRequest struct {
	Statut models.TicketStatus `json:"statut" binding:"required,oneof=ouvert en_cours resolu ferme"`
}

type TicketFilter struct {
	Statut models.TicketStatus `form:"statut" binding:"omitempty,oneof=ouvert en_cours resolu ferme"`
}
