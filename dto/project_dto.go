package dto

import (
	"time"

	"github.com/agency-portal/models"
)

// ProjectRequest represents the request payload for creating or replacing a project
type ProjectRequest struct {
	ClientID    string               `json:"client_id" binding:"required"`
	Titre       string               `json:"titre" binding:"required"`
	Description string               `json:"description"`
	Statut      models.ProjectStatus `json:"statut" binding:"omitempty,oneof=en_attente en_cours en_revision termine suspendu"`
	DateDebut   *time.Time           `json:"date_debut"`
	DateFin     *time.Time           `json:"date_fin"`
	Budget      float64              `json:"budget" binding:"gte=0"`
	Progression int                  `json:"progression" binding:"gte=0,lte=100"`
}

type ProjectStatusRequest struct {
	Statut models.ProjectStatus `json:"statut" binding:"required,oneof=en_attente en_cours en_revision termine suspendu"`
}

// ProjectStatsResponse represents project statistics for the detail page
type ProjectStatsResponse struct {
	Project struct {
		ID          string               `json:"id"`
		Titre       string               `json:"titre"`
		Statut      models.ProjectStatus `json:"statut"`
		Progression int                  `json:"progression"`
	} `json:"project"`

	Tasks struct {
		Total    int64                       `json:"total"`
		ByStatus map[models.WorkStatus]int64 `json:"by_status"`
		// Completion is the share of finished tasks, 0 to 100
		Completion int `json:"completion"`
	} `json:"tasks"`

	Milestones struct {
		Total    int64                       `json:"total"`
		ByStatus map[models.WorkStatus]int64 `json:"by_status"`
	} `json:"milestones"`

	OpenTickets        int64 `json:"open_tickets"`
	Documents          int64 `json:"documents"`
	AwaitingSignatures int64 `json:"awaiting_signatures"`
}

// RoadmapResponse is the client portal roadmap of one project
type RoadmapResponse struct {
	Project    models.Project     `json:"project"`
	Milestones []RoadmapMilestone `json:"milestones"`
	// Unplanned holds the tasks attached to no milestone
	Unplanned []models.Task `json:"unplanned"`
}

type RoadmapMilestone struct {
	models.Milestone
	Tasks []models.Task `json:"tasks"`
}
