package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
)

func TestReviewService_Create(t *testing.T) {
	tests := []struct {
		name          string
		rating        int
		setupMock     func(*MockReviewRepository, *MockProductRepository)
		expectedError error
	}{
		{
			name:   "successful review",
			rating: 5,
			setupMock: func(reviews *MockReviewRepository, products *MockProductRepository) {
				products.On("FindByID", mock.Anything, uint(1)).Return(&model.Product{ID: 1}, nil)
				reviews.On("ExistsForProductUser", mock.Anything, uint(1), uint(7)).Return(false, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
		},
		{
			name:          "rating out of range",
			rating:        6,
			setupMock:     func(reviews *MockReviewRepository, products *MockProductRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:   "unknown product",
			rating: 4,
			setupMock: func(reviews *MockReviewRepository, products *MockProductRepository) {
				products.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
		{
			name:   "second review for same product",
			rating: 4,
			setupMock: func(reviews *MockReviewRepository, products *MockProductRepository) {
				products.On("FindByID", mock.Anything, uint(1)).Return(&model.Product{ID: 1}, nil)
				reviews.On("ExistsForProductUser", mock.Anything, uint(1), uint(7)).Return(true, nil)
			},
			expectedError: apperrors.ErrDuplicateReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockReviews, mockProducts)

			service := NewReviewService(mockReviews, mockProducts)

			review, err := service.Create(context.Background(), 7, 1, tt.rating, "Sağlam ürün")

			if tt.expectedError != nil {
				assert.Nil(t, review)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				assert.Equal(t, tt.rating, review.Rating)
				assert.Equal(t, uint(7), review.UserID)
			}

			mockReviews.AssertExpectations(t)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	t.Run("owner deletes own review", func(t *testing.T) {
		mockReviews := new(MockReviewRepository)
		mockReviews.On("DeleteOwned", mock.Anything, uint(1), uint(7)).Return(nil)

		service := NewReviewService(mockReviews, new(MockProductRepository))

		assert.NoError(t, service.Delete(context.Background(), 1, 7, false))
		mockReviews.AssertExpectations(t)
	})

	t.Run("admin deletes anyone's review", func(t *testing.T) {
		mockReviews := new(MockReviewRepository)
		mockReviews.On("Delete", mock.Anything, uint(1)).Return(nil)

		service := NewReviewService(mockReviews, new(MockProductRepository))

		assert.NoError(t, service.Delete(context.Background(), 1, 99, true))
		mockReviews.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		mockReviews := new(MockReviewRepository)
		mockReviews.On("DeleteOwned", mock.Anything, uint(1), uint(8)).Return(gorm.ErrRecordNotFound)

		service := NewReviewService(mockReviews, new(MockProductRepository))

		assert.Equal(t, apperrors.ErrReviewNotFound, service.Delete(context.Background(), 1, 8, false))
	})
}
