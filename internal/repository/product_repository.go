package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"firesafe/internal/model"
)

// ProductFilter narrows and orders product listings. SortBy and Order are
// whitelisted before touching the query.
type ProductFilter struct {
	Category string
	Search   string
	InStock  *bool
	SortBy   string
	Order    string
}

// CatchAllCategory is the synthetic first entry of the category listing.
const CatchAllCategory = "Tüm Ürünler"

var sortableColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
}

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Category != "" && filter.Category != CatchAllCategory {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.InStock != nil {
		q = q.Where("in_stock = ?", *filter.InStock)
	}

	column := "created_at"
	if sortableColumns[filter.SortBy] {
		column = filter.SortBy
	}
	direction := "DESC"
	if strings.EqualFold(filter.Order, "ASC") {
		direction = "ASC"
	}

	var products []model.Product
	if err := q.Order(column + " " + direction).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
