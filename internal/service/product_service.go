package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"firesafe/internal/cache"
	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

const productCacheTTL = 5 * time.Minute

const categoriesCacheKey = "products:categories"

// ProductUpdate carries partial catalog edits; nil fields keep their value.
type ProductUpdate struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Image       *string
	Images      []string
	Description *string
	Specs       []string
	InStock     *bool
}

// ProductService exposes the catalog.
type ProductService interface {
	List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id uint, update ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService builds a ProductService with repository and cache.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// Categories returns the distinct category list, prefixed with the
// storefront's catch-all entry.
func (s *productService) Categories(ctx context.Context) ([]string, error) {
	if data, _ := s.cache.Get(ctx, categoriesCacheKey); data != nil {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	result := append([]string{repository.CatchAllCategory}, categories...)

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, categoriesCacheKey, payload, productCacheTTL)
	}
	return result, nil
}

func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Specs == nil {
		product.Specs = []string{}
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	_ = s.cache.Delete(ctx, categoriesCacheKey)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uint, update ProductUpdate) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.Images != nil {
		product.Images = update.Images
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Specs != nil {
		product.Specs = update.Specs
	}
	if update.InStock != nil {
		product.InStock = *update.InStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id), categoriesCacheKey)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id), categoriesCacheKey)
	return nil
}
