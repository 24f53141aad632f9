package dto

import (
	"time"

	"github.com/agency-portal/models"
)

type MilestoneRequest struct {
	Titre        string            `json:"titre" binding:"required"`
	Description  string            `json:"description"`
	Ordre        int               `json:"ordre"`
	Statut       models.WorkStatus `json:"statut" binding:"omitempty,oneof=a_faire en_cours termine"`
	DateEcheance *time.Time        `json:"date_echeance"`
}

// WorkStatusRequest changes the statut of a milestone or a task
type WorkStatusRequest struct {
	Statut models.WorkStatus `json:"statut" binding:"required,oneof=a_faire en_cours termine"`
}

type TaskRequest struct {
	MilestoneID  *string             `json:"milestone_id"`
	Titre        string              `json:"titre" binding:"required"`
	Description  string              `json:"description"`
	Statut       models.WorkStatus   `json:"statut" binding:"omitempty,oneof=a_faire en_cours termine"`
	Priorite     models.TaskPriority `json:"priorite" binding:"omitempty,oneof=basse moyenne haute"`
	DateEcheance *time.Time          `json:"date_echeance"`
}

// TaskFilter is the query of a task list
type TaskFilter struct {
	Statut      models.WorkStatus `form:"statut" binding:"omitempty,oneof=a_faire en_cours termine"`
	MilestoneID string            `form:"milestone_id"`
}
