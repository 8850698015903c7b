package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"firesafe/internal/model"
)

// OrderRepository defines order persistence operations. Creation runs
// through WithTransaction so the order row, its items and the item-id
// backfill commit or roll back as one unit.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	UpdateItemIDs(ctx context.Context, orderID uint, itemIDs []uint) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ItemsByOrder(ctx context.Context, orderID uint) ([]model.OrderItemDetail, error)
	ItemsByIDs(ctx context.Context, itemIDs []uint) ([]model.OrderItemDetail, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
	SetPayment(ctx context.Context, id uint, paymentID string, status model.OrderStatus) error
	Count(ctx context.Context) (int64, error)
	CompletedRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	RecentDaily(ctx context.Context, since time.Time) ([]model.DailyRevenue, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds a GORM-backed repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderRepository) UpdateItemIDs(ctx context.Context, orderID uint, itemIDs []uint) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("order_item_ids", itemIDs).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []model.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ItemsByOrder(ctx context.Context, orderID uint) ([]model.OrderItemDetail, error) {
	var items []model.OrderItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("oi.*, p.name AS product_name, p.image AS product_image, p.category AS category").
		Joins("LEFT JOIN products p ON oi.product_id = p.id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id ASC").
		Scan(&items).Error
	return items, err
}

func (r *orderRepository) ItemsByIDs(ctx context.Context, itemIDs []uint) ([]model.OrderItemDetail, error) {
	var items []model.OrderItemDetail
	if len(itemIDs) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("oi.*, p.name AS product_name, p.image AS product_image, p.category AS category").
		Joins("LEFT JOIN products p ON oi.product_id = p.id").
		Where("oi.id IN ?", itemIDs).
		Order("oi.id ASC").
		Scan(&items).Error
	return items, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) SetPayment(ctx context.Context, id uint, paymentID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"payment_id": paymentID, "status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepository) RecentDaily(ctx context.Context, since time.Time) ([]model.DailyRevenue, error) {
	var rows []model.DailyRevenue
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&rows).Error
	return rows, err
}

// WithTransaction executes fn within a database transaction.
func (r *orderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &orderRepository{db: tx})
	})
}
