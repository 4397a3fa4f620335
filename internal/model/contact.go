package model

import "time"

// Contact is an address-book entry owned by exactly one user. The email is
// optional and unique per owner, not globally; it is stored as NULL when
// absent so email-less contacts never collide on the index.
type Contact struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"-" gorm:"not null;uniqueIndex:uniq_contact_user_email;index"`
	FirstName   string     `json:"first_name" gorm:"size:50;not null"`
	LastName    string     `json:"last_name" gorm:"size:50;not null"`
	Email       *string    `json:"email,omitempty" gorm:"size:60;uniqueIndex:uniq_contact_user_email"`
	PhoneNumber string     `json:"phone_number,omitempty" gorm:"size:20"`
	Birthday    *time.Time `json:"birthday,omitempty" gorm:"type:date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
