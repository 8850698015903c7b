package model

import "time"

// PasswordReset is a single-use password reset token. Only the SHA-256
// digest of the token is stored; the plaintext travels once, by email.
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
}
