package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"firesafe/internal/model"
)

// clauseForUpdate takes a row-level lock for read-then-write sequences.
var clauseForUpdate = clause.Locking{Strength: "UPDATE"}

// PasswordResetRepository defines reset-token persistence operations.
// Consumption is transactional: the credential update and the token delete
// commit together or not at all.
type PasswordResetRepository interface {
	Replace(ctx context.Context, reset *model.PasswordReset) error
	FindValid(ctx context.Context, tokenHash string, now time.Time) (*model.PasswordReset, error)
	Consume(ctx context.Context, tokenHash string, now time.Time, newPasswordHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository builds a GORM-backed repository.
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Replace deletes any live token for the user and stores the new one, so at
// most one token per user exists at any moment.
func (r *passwordResetRepository) Replace(ctx context.Context, reset *model.PasswordReset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", reset.UserID).
			Delete(&model.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
}

func (r *passwordResetRepository) FindValid(ctx context.Context, tokenHash string, now time.Time) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// Consume re-validates the token under a row lock, updates the user's
// credential and deletes every token the user holds, all in one transaction.
// Returns gorm.ErrRecordNotFound for unknown and expired tokens alike.
func (r *passwordResetRepository) Consume(ctx context.Context, tokenHash string, now time.Time, newPasswordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reset model.PasswordReset
		if err := tx.Clauses(clauseForUpdate).
			Where("token_hash = ? AND expires_at > ?", tokenHash, now).
			First(&reset).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", reset.UserID).
			Update("password_hash", newPasswordHash).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", reset.UserID).
			Delete(&model.PasswordReset{}).Error
	})
}

func (r *passwordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.PasswordReset{})
	return res.RowsAffected, res.Error
}
