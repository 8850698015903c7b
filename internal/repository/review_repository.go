package repository

import (
	"context"

	"gorm.io/gorm"

	"firesafe/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Review, error)
	ExistsForProductUser(ctx context.Context, productID, userID uint) (bool, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.ProductReview, error)
	Delete(ctx context.Context, id uint) error
	DeleteOwned(ctx context.Context, id, userID uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsForProductUser(ctx context.Context, productID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.WithContext(ctx).
		Table("reviews r").
		Select("r.*, u.name AS user_name").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.product_id = ?", productID).
		Order("r.created_at DESC").
		Scan(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
