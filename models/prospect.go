package models

// ProspectStatus is the sales pipeline position of a prospect
type ProspectStatus string

const (
	ProspectNouveau  ProspectStatus = "nouveau"
	ProspectContacte ProspectStatus = "contacte"
	ProspectQualifie ProspectStatus = "qualifie"
	ProspectNegocie  ProspectStatus = "negocie"
	ProspectConverti ProspectStatus = "converti"
	ProspectPerdu    ProspectStatus = "perdu"
	ProspectArchive  ProspectStatus = "archive"
)

// ProspectStatuses lists the pipeline in order
var ProspectStatuses = []ProspectStatus{
	ProspectNouveau, ProspectContacte, ProspectQualifie, ProspectNegocie,
	ProspectConverti, ProspectPerdu, ProspectArchive,
}

// ClosedProspectStatuses are hidden from the active prospects view
var ClosedProspectStatuses = []ProspectStatus{ProspectConverti, ProspectPerdu, ProspectArchive}

// Valid reports whether s belongs to the pipeline
func (s ProspectStatus) Valid() bool {
	for _, v := range ProspectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Active reports whether the prospect still belongs in the working pipeline
func (s ProspectStatus) Active() bool {
	for _, v := range ClosedProspectStatuses {
		if s == v {
			return false
		}
	}
	return true
}

// Prospect is a sales lead prior to becoming a client
type Prospect struct {
	Base
	Nom          string         `json:"nom" gorm:"not null"`
	Entreprise   string         `json:"entreprise"`
	Email        string         `json:"email"`
	Telephone    string         `json:"telephone"`
	Source       string         `json:"source"`
	BudgetEstime float64        `json:"budget_estime"`
	Notes        string         `json:"notes"`
	Statut       ProspectStatus `json:"statut" gorm:"type:varchar(20);default:'nouveau';index"`

	// Set once the prospect has been converted
	ClientID  *string `json:"client_id" gorm:"type:varchar(36)"`
	ProjectID *string `json:"projet_id" gorm:"column:projet_id;type:varchar(36)"`
}

func (Prospect) TableName() string {
	return "prospects"
}
