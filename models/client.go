package models

// Client is a paying customer of the agency; it owns zero or more projects
type Client struct {
	Base
	Nom        string `json:"nom" gorm:"not null"`
	Entreprise string `json:"entreprise"`
	Email      string `json:"email" gorm:"index"`
	Telephone  string `json:"telephone"`
	Adresse    string `json:"adresse"`
	Notes      string `json:"notes"`
}

func (Client) TableName() string {
	return "clients"
}
