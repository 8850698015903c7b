package model

import "time"

// Address is a shipping address owned by a user. At most one address per
// user carries IsDefault; siblings are cleared before a new default is set.
type Address struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Street    string    `json:"street" gorm:"type:text;not null"`
	City      string    `json:"city" gorm:"size:100;not null"`
	ZipCode   string    `json:"zipCode" gorm:"size:10;not null"`
	Phone     string    `json:"phone" gorm:"size:20;not null"`
	IsDefault bool      `json:"isDefault" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
