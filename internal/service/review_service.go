package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

// ReviewService manages product reviews.
type ReviewService interface {
	ListByProduct(ctx context.Context, productID uint) ([]model.ProductReview, error)
	Create(ctx context.Context, userID, productID uint, rating int, comment string) (*model.Review, error)
	Update(ctx context.Context, id, userID uint, rating *int, comment *string) (*model.Review, error)
	Delete(ctx context.Context, id, userID uint, isAdmin bool) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

// Create adds a review. One review per user per product: a second attempt
// fails before the insert, and the unique index backs that up under races.
func (s *reviewService) Create(ctx context.Context, userID, productID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForProductUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id, userID uint, rating *int, comment *string) (*model.Review, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, apperrors.ErrInvalidRating
	}

	review, err := s.reviewRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	if rating != nil {
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// Delete removes a review; owners delete their own, admins anyone's.
func (s *reviewService) Delete(ctx context.Context, id, userID uint, isAdmin bool) error {
	var err error
	if isAdmin {
		err = s.reviewRepo.Delete(ctx, id)
	} else {
		err = s.reviewRepo.DeleteOwned(ctx, id, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return err
	}
	return nil
}
