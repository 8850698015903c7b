package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Category    string          `json:"category" gorm:"size:100;not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Image       string          `json:"image,omitempty" gorm:"type:text"`
	Images      []string        `json:"images" gorm:"serializer:json"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Specs       []string        `json:"specs" gorm:"serializer:json"`
	InStock     bool            `json:"inStock" gorm:"default:true;index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
