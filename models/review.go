package models

// Review is the client's rating of a delivered project. A client reviews a project once.
type Review struct {
	Base
	ProjectID   string `json:"projet_id" gorm:"column:projet_id;type:varchar(36);not null;uniqueIndex:idx_reviews_project_client"`
	ClientID    string `json:"client_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_reviews_project_client"`
	Note        int    `json:"note" gorm:"not null"`
	Commentaire string `json:"commentaire"`
}

func (Review) TableName() string {
	return "reviews"
}
