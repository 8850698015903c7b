package repository

import (
	"context"

	"gorm.io/gorm"

	"firesafe/internal/model"
)

// AddressRepository defines address persistence operations. All lookups are
// scoped by owner so one user can never touch another's addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Address, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Address, error)
	Delete(ctx context.Context, id, userID uint) error
	ClearDefault(ctx context.Context, userID uint) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AddressRepository) error) error
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository builds a GORM-backed repository.
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *addressRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearDefault drops the default flag on every address the user owns.
func (r *addressRepository) ClearDefault(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

// WithTransaction executes fn within a database transaction.
func (r *addressRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AddressRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &addressRepository{db: tx})
	})
}
