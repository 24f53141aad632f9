package models

import "time"

// ProjectStatus is the delivery state of a project
type ProjectStatus string

const (
	ProjectEnAttente  ProjectStatus = "en_attente"
	ProjectEnCours    ProjectStatus = "en_cours"
	ProjectEnRevision ProjectStatus = "en_revision"
	ProjectTermine    ProjectStatus = "termine"
	ProjectSuspendu   ProjectStatus = "suspendu"
)

var ProjectStatuses = []ProjectStatus{
	ProjectEnAttente, ProjectEnCours, ProjectEnRevision, ProjectTermine, ProjectSuspendu,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Project belongs to one client and owns milestones, tasks, tickets, documents and reviews
type Project struct {
	Base
	ClientID    string        `json:"client_id" gorm:"type:varchar(36);not null;index"`
	Titre       string        `json:"titre" gorm:"not null"`
	Description string        `json:"description"`
	Statut      ProjectStatus `json:"statut" gorm:"type:varchar(20);default:'en_attente';index"`
	DateDebut   *time.Time    `json:"date_debut"`
	DateFin     *time.Time    `json:"date_fin"`
	Budget      float64       `json:"budget"`
	Progression int           `json:"progression"`
}

func (Project) TableName() string {
	return "projects"
}
