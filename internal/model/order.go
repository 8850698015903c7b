package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a placed order. UserID and ShippingAddressID are nullable
// so that deleting a user or address never destroys order history.
type Order struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	OrderNumber       string          `json:"orderNumber" gorm:"uniqueIndex;size:50;not null"`
	UserID            *uint           `json:"userId" gorm:"index"`
	TotalAmount       decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod     string          `json:"paymentMethod" gorm:"size:20;not null"`
	PaymentID         string          `json:"paymentId,omitempty" gorm:"size:255"`
	ShippingAddressID *uint           `json:"shippingAddressId"`
	OrderItemIDs      []uint          `json:"orderItemIds" gorm:"serializer:json;column:order_item_ids"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	// Relations
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line item with the product price snapshotted at purchase
// time. UnitPrice never changes after creation, regardless of later catalog
// price edits.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"orderId" gorm:"not null;index"`
	ProductID  *uint           `json:"productId" gorm:"index"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// OrderItemDetail is an order item joined with its product's display fields
// for order listings and confirmation emails.
type OrderItemDetail struct {
	OrderItem
	ProductName  string `json:"productName,omitempty"`
	ProductImage string `json:"productImage,omitempty"`
	Category     string `json:"category,omitempty"`
}
