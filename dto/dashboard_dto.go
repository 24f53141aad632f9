package dto

import "github.com/agency-portal/models"

// DashboardStats feeds the stat cards of the admin home
type DashboardStats struct {
	Clients             int64                          `json:"clients"`
	ActiveProspects     int64                          `json:"active_prospects"`
	Projects            int64                          `json:"projects"`
	ProjectsByStatus    map[models.ProjectStatus]int64 `json:"projects_by_status"`
	OpenTickets         int64                          `json:"open_tickets"`
	UnreadNotifications int64                          `json:"unread_notifications"`
	AverageReview       float64                        `json:"average_review"`
}

// SidebarCounts are the badges of the admin navigation
type SidebarCounts struct {
	UnreadNotifications int64 `json:"unread_notifications"`
	OpenTickets         int64 `json:"open_tickets"`
	ActiveProspects     int64 `json:"active_prospects"`
}
