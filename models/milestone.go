package models

import "time"

// WorkStatus is shared by milestones and tasks
type WorkStatus string

const (
	WorkAFaire  WorkStatus = "a_faire"
	WorkEnCours WorkStatus = "en_cours"
	WorkTermine WorkStatus = "termine"
)

var WorkStatuses = []WorkStatus{WorkAFaire, WorkEnCours, WorkTermine}

func (s WorkStatus) Valid() bool {
	return s == WorkAFaire || s == WorkEnCours || s == WorkTermine
}

// Milestone is a project phase. Ordre sorts the roadmap but is neither contiguous nor unique.
type Milestone struct {
	Base
	ProjectID    string     `json:"projet_id" gorm:"column:projet_id;type:varchar(36);not null;index"`
	Titre        string     `json:"titre" gorm:"not null"`
	Description  string     `json:"description"`
	Ordre        int        `json:"ordre"`
	Statut       WorkStatus `json:"statut" gorm:"type:varchar(20);default:'a_faire'"`
	DateEcheance *time.Time `json:"date_echeance"`
}

func (Milestone) TableName() string {
	return "milestones"
}
