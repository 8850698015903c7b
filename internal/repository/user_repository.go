package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"firesafe/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	RecentRegistrations(ctx context.Context, since time.Time) ([]model.DailyCount, error)
	TopBuyers(ctx context.Context, limit int) ([]model.TopBuyer, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) RecentRegistrations(ctx context.Context, since time.Time) ([]model.DailyCount, error) {
	var rows []model.DailyCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *userRepository) TopBuyers(ctx context.Context, limit int) ([]model.TopBuyer, error) {
	var rows []model.TopBuyer
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.name, u.email, COUNT(o.id) AS order_count, COALESCE(SUM(o.total_amount), 0) AS total_spent").
		Joins("LEFT JOIN orders o ON u.id = o.user_id").
		Group("u.id").
		Having("COUNT(o.id) > 0").
		Order("order_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
