package models

// Role represents user role types
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Home is the portal landing path for the role
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/app"
}

// User represents a login account. Client accounts are bound to exactly one Client.
type User struct {
	Base
	Email    string  `json:"email" gorm:"uniqueIndex;not null"`
	Password string  `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Nom      string  `json:"nom"`
	Role     Role    `json:"role" gorm:"type:varchar(10);default:'client'"`
	ClientID *string `json:"client_id" gorm:"type:varchar(36);index"`
}

func (User) TableName() string {
	return "users"
}
