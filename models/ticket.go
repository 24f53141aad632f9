package models

// TicketStatus tracks a client request through support
type TicketStatus string

const (
	TicketOuvert  TicketStatus = "ouvert"
	TicketEnCours TicketStatus = "en_cours"
	TicketResolu  TicketStatus = "resolu"
	TicketFerme   TicketStatus = "ferme"
)

var TicketStatuses = []TicketStatus{TicketOuvert, TicketEnCours, TicketResolu, TicketFerme}

func (s TicketStatus) Valid() bool {
	for _, v := range TicketStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Open reports whether the ticket still needs attention from the agency
func (s TicketStatus) Open() bool {
	return s == TicketOuvert || s == TicketEnCours
}

// Ticket is a client-submitted support or change request on a project
type Ticket struct {
	Base
	ProjectID   string             `json:"projet_id" gorm:"column:projet_id;type:varchar(36);not null;index"`
	ClientID    string             `json:"client_id" gorm:"type:varchar(36);not null;index"`
	Titre       string             `json:"titre" gorm:"not null"`
	Description string             `json:"description"`
	Statut      TicketStatus       `json:"statut" gorm:"type:varchar(20);default:'ouvert';index"`
	Priorite    TaskPriority       `json:"priorite" gorm:"type:varchar(20);default:'moyenne'"`
	Attachments []TicketAttachment `json:"attachments,omitempty" gorm:"foreignKey:TicketID"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketAttachment is a file uploaded alongside a ticket; FilePath is its object storage key
type TicketAttachment struct {
	Base
	TicketID    string `json:"ticket_id" gorm:"type:varchar(36);not null;index"`
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
}

func (TicketAttachment) TableName() string {
	return "ticket_attachments"
}
