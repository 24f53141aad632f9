package models

import "time"

// Audience selects who sees a notification
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudienceClient Audience = "client"
)

// NotificationType is the event a notification reports
type NotificationType string

const (
	NotificationComment         NotificationType = "comment"
	NotificationTicket          NotificationType = "ticket"
	NotificationTicketStatus    NotificationType = "ticket_status"
	NotificationReview          NotificationType = "review"
	NotificationTaskCreated     NotificationType = "task_created"
	NotificationMilestoneUpdate NotificationType = "milestone_update"
	NotificationDocument        NotificationType = "document"
	NotificationProjectStatus   NotificationType = "project_status"
)

// Notification moves one way from unread to read
type Notification struct {
	Base
	Audience  Audience         `json:"audience" gorm:"type:varchar(10);not null;index:idx_notifications_target"`
	ClientID  *string          `json:"client_id" gorm:"type:varchar(36);index:idx_notifications_target"`
	Type      NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Titre     string           `json:"titre"`
	Message   string           `json:"message"`
	Link      string           `json:"link"`
	ProjectID *string          `json:"projet_id" gorm:"column:projet_id;type:varchar(36)"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	ReadAt    *time.Time       `json:"read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
