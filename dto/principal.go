package dto

import "github.com/agency-portal/models"

// Principal is the resolved caller of a request: an admin, or a client bound to one client record
type Principal struct {
	Kind     models.Role `json:"role"`
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	ClientID string      `json:"client_id,omitempty"`
}

func AdminPrincipal(userID string) Principal {
	return Principal{Kind: models.RoleAdmin, UserID: userID}
}

func ClientPrincipal(userID, clientID string) Principal {
	return Principal{Kind: models.RoleClient, UserID: userID, ClientID: clientID}
}

func (p Principal) IsAdmin() bool {
	return p.Kind == models.RoleAdmin
}

func (p Principal) IsClient() bool {
	return p.Kind == models.RoleClient && p.ClientID != ""
}

// Audience is the notification inbox the principal reads
func (p Principal) Audience() models.Audience {
	if p.IsAdmin() {
		return models.AudienceAdmin
	}
	return models.AudienceClient
}
