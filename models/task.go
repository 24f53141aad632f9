package models

import "time"

// TaskPriority orders tasks on the board
type TaskPriority string

const (
	PriorityBasse   TaskPriority = "basse"
	PriorityMoyenne TaskPriority = "moyenne"
	PriorityHaute   TaskPriority = "haute"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityBasse || p == PriorityMoyenne || p == PriorityHaute
}

// Task belongs to a project and optionally to one of its milestones
type Task struct {
	Base
	ProjectID    string       `json:"projet_id" gorm:"column:projet_id;type:varchar(36);not null;index"`
	MilestoneID  *string      `json:"milestone_id" gorm:"type:varchar(36);index"`
	Titre        string       `json:"titre" gorm:"not null"`
	Description  string       `json:"description"`
	Statut       WorkStatus   `json:"statut" gorm:"type:varchar(20);default:'a_faire'"`
	Priorite     TaskPriority `json:"priorite" gorm:"type:varchar(20);default:'moyenne'"`
	DateEcheance *time.Time   `json:"date_echeance"`
}

func (Task) TableName() string {
	return "tasks"
}
