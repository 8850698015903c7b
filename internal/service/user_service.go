package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

// UserDetail is a user expanded with their addresses and order summaries
// for the admin view.
type UserDetail struct {
	model.User
	Orders []model.Order `json:"orders"`
}

// UserService is the admin-facing user surface. The actor id travels with
// every mutating call so self-demotion and self-deletion can be rejected.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uint) (*UserDetail, error)
	SetAdmin(ctx context.Context, actorID, targetID uint, isAdmin bool) (*model.User, error)
	Delete(ctx context.Context, actorID, targetID uint) error
	Stats(ctx context.Context) (*model.UserStats, error)
}

type userService struct {
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	orderRepo   repository.OrderRepository
}

// NewUserService creates a new user administration service.
func NewUserService(
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	orderRepo repository.OrderRepository,
) UserService {
	return &userService{userRepo: userRepo, addressRepo: addressRepo, orderRepo: orderRepo}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	addresses, err := s.addressRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Addresses = addresses
	return &UserDetail{User: *user, Orders: orders}, nil
}

// SetAdmin flips the admin flag. An admin cannot change their own flag
// through this endpoint.
func (s *userService) SetAdmin(ctx context.Context, actorID, targetID uint, isAdmin bool) (*model.User, error) {
	if actorID == targetID {
		return nil, apperrors.ErrSelfAdminChange
	}

	if err := s.userRepo.SetAdmin(ctx, targetID, isAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return s.userRepo.FindByID(ctx, targetID)
}

// Delete removes a user. Self-deletion is rejected; historical orders
// survive through their nullable user reference.
func (s *userService) Delete(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return apperrors.ErrSelfDelete
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Stats(ctx context.Context) (*model.UserStats, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.userRepo.RecentRegistrations(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	top, err := s.userRepo.TopBuyers(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &model.UserStats{
		TotalUsers:          total,
		AdminCount:          admins,
		RecentRegistrations: recent,
		TopUsers:            top,
	}, nil
}
