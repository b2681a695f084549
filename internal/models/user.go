package models

import "time"

// User is the operator performing a calculation. Identity and session
// management live outside this service; this record only scopes
// per-session state (the provisioning table) and audit fields.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"default:officer;not null" json:"role"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// User role constants
const (
	UserRoleAdmin   = "admin"
	UserRoleOfficer = "officer"
)
