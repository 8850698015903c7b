package model

import "time"

// User represents a storefront customer or administrator.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Phone        string    `json:"phone,omitempty" gorm:"size:20"`
	IsAdmin      bool      `json:"isAdmin" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations. Addresses, reviews and reset tokens die with the user;
	// orders keep a nullable reference instead (see Order).
	Addresses []Address       `json:"addresses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Reviews   []Review        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Resets    []PasswordReset `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
