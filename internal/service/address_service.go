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

// AddressInput carries address fields for create and partial update.
type AddressInput struct {
	Name      *string
	Street    *string
	City      *string
	ZipCode   *string
	Phone     *string
	IsDefault *bool
}

// AddressService manages a user's shipping addresses.
type AddressService interface {
	List(ctx context.Context, userID uint) ([]model.Address, error)
	Create(ctx context.Context, userID uint, in AddressInput) (*model.Address, error)
	Update(ctx context.Context, id, userID uint, in AddressInput) (*model.Address, error)
	Delete(ctx context.Context, id, userID uint) error
}

type addressService struct {
	repo repository.AddressRepository
}

// NewAddressService creates a new address service.
func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) List(ctx context.Context, userID uint) ([]model.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create stores a new address. When it is flagged default, every sibling's
// flag is cleared in the same transaction so exactly one default survives.
func (s *addressService) Create(ctx context.Context, userID uint, in AddressInput) (*model.Address, error) {
	address := &model.Address{UserID: userID}
	applyAddressInput(address, in)

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.AddressRepository) error {
		if address.IsDefault {
			if err := tx.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return tx.Create(ctx, address)
	})
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return address, nil
}

func (s *addressService) Update(ctx context.Context, id, userID uint, in AddressInput) (*model.Address, error) {
	var address *model.Address
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.AddressRepository) error {
		var err error
		address, err = tx.FindByIDForUser(ctx, id, userID)
		if err != nil {
			return err
		}

		if in.IsDefault != nil && *in.IsDefault {
			if err := tx.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		applyAddressInput(address, in)
		return tx.Update(ctx, address)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAddressNotFound
		}
		return nil, fmt.Errorf("update address: %w", err)
	}
	return address, nil
}

func (s *addressService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAddressNotFound
		}
		return err
	}
	return nil
}

func applyAddressInput(address *model.Address, in AddressInput) {
	if in.Name != nil {
		address.Name = *in.Name
	}
	if in.Street != nil {
		address.Street = *in.Street
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.ZipCode != nil {
		address.ZipCode = *in.ZipCode
	}
	if in.Phone != nil {
		address.Phone = *in.Phone
	}
	if in.IsDefault != nil {
		address.IsDefault = *in.IsDefault
	}
}
