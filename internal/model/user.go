package model

import "time"

// Role is a closed set of user roles.
type Role string

const (
	// RoleAdmin grants access to privileged operations.
	RoleAdmin Role = "admin"
	// RoleUser is the default role for registered users.
	RoleUser Role = "user"
)

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	AvatarURL    string    `json:"avatar_url,omitempty" gorm:"size:255"`
	Verified     bool      `json:"verified" gorm:"default:false;not null"`
	Role         Role      `json:"role" gorm:"size:50;default:'user';not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Contacts []Contact `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
