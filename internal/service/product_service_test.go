package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

// Tests run with a nil cache client, which degrades to a permanent miss.

func TestProductService_Get(t *testing.T) {
	t.Run("returns product", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Product{ID: 1, Name: "Yangın Söndürücü"}, nil)

		service := NewProductService(mockRepo, nil)

		product, err := service.Get(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Yangın Söndürücü", product.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)

		product, err := service.Get(context.Background(), 99)

		assert.Nil(t, product)
		assert.Equal(t, apperrors.ErrProductNotFound, err)
	})
}

func TestProductService_Categories(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("Categories", mock.Anything).Return([]string{"Dedektörler", "Yangın Söndürücüler"}, nil)

	service := NewProductService(mockRepo, nil)

	categories, err := service.Categories(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{repository.CatchAllCategory, "Dedektörler", "Yangın Söndürücüler"}, categories)
}

func TestProductService_Update(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Product{
		ID:    1,
		Name:  "Yangın Söndürücü",
		Price: decimal.NewFromFloat(850.00),
	}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	service := NewProductService(mockRepo, nil)

	newPrice := decimal.NewFromFloat(899.00)
	product, err := service.Update(context.Background(), 1, ProductUpdate{Price: &newPrice})

	assert.NoError(t, err)
	assert.True(t, newPrice.Equal(product.Price))
	assert.Equal(t, "Yangın Söndürücü", product.Name)
	mockRepo.AssertExpectations(t)
}
