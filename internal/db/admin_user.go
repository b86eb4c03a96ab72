package db

import "time"

// Admin roles. The first account ever created becomes an admin; later
// signups default to editor and need a manual promotion.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser is a row in the admin_users table. Its ID doubles as the auth
// subject stored in the session cookie.
type AdminUser struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	Role         string    `gorm:"not null;default:editor" json:"role"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table keyed the way the admin guard expects.
func (AdminUser) TableName() string { return "admin_users" }
