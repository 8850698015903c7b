package model

import "time"

// Review is a product review. The (product, user) pair is unique: one
// review per user per product, enforced by a composite index.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_reviews_product_user;index"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductReview is a review joined with the author's display name.
type ProductReview struct {
	Review
	UserName string `json:"userName"`
}
