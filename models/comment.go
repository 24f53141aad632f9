package models

// Comment is written by a client on exactly one task or milestone
type Comment struct {
	Base
	TaskID      *string `json:"task_id" gorm:"type:varchar(36);index"`
	MilestoneID *string `json:"milestone_id" gorm:"type:varchar(36);index"`
	ClientID    string  `json:"client_id" gorm:"type:varchar(36);not null"`
	Contenu     string  `json:"contenu" gorm:"not null"`
}

func (Comment) TableName() string {
	return "comments"
}
