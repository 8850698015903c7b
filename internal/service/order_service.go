package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

const confirmationTimeout = 30 * time.Second

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items             []OrderItemInput
	ShippingAddressID uint
	PaymentMethod     string
	PaymentID         string
}

// CreateOrderResult is what the caller gets back after the commit.
type CreateOrderResult struct {
	OrderID      uint            `json:"orderId"`
	OrderNumber  string          `json:"orderNumber"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderItemIDs []uint          `json:"orderItemIds"`
}

// OrderWithItems is an order expanded with its resolved line items.
type OrderWithItems struct {
	model.Order
	Items      []model.OrderItemDetail `json:"items"`
	ItemsCount int                     `json:"itemsCount"`
}

// OrderService implements the order workflow and the admin order surface.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uint, in CreateOrderInput) (*CreateOrderResult, error)
	ListForUser(ctx context.Context, userID uint) ([]OrderWithItems, error)
	Get(ctx context.Context, id, userID uint, isAdmin bool) (*OrderWithItems, error)
	ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	mailer      MailSender
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	mailer MailSender,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		mailer:      mailer,
	}
}

// CreateOrder prices the requested items from the current catalog, persists
// the order and its line items atomically, then fires the confirmation mail
// after commit. Prices are read once; the same values feed the order total
// and the per-item snapshots.
func (s *orderService) CreateOrder(ctx context.Context, userID uint, in CreateOrderInput) (*CreateOrderResult, error) {
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	priceByID := make(map[uint]decimal.Decimal, len(products))
	nameByID := make(map[uint]string, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
		nameByID[p.ID] = p.Name
	}

	total := decimal.Zero
	for _, item := range in.Items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return nil, apperrors.ErrProductNotFound
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shippingAddressID := in.ShippingAddressID
	order := &model.Order{
		OrderNumber:       generateOrderNumber(),
		UserID:            &userID,
		TotalAmount:       total,
		Status:            model.OrderStatusPending,
		PaymentMethod:     in.PaymentMethod,
		PaymentID:         in.PaymentID,
		ShippingAddressID: &shippingAddressID,
	}

	var itemIDs []uint
	err = s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx repository.OrderRepository) error {
		if err := tx.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		itemIDs = make([]uint, 0, len(in.Items))
		for _, item := range in.Items {
			productID := item.ProductID
			unitPrice := priceByID[item.ProductID]
			orderItem := &model.OrderItem{
				OrderID:    order.ID,
				ProductID:  &productID,
				Quantity:   item.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			if err := tx.CreateItem(ctx, orderItem); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			itemIDs = append(itemIDs, orderItem.ID)
		}

		return tx.UpdateItemIDs(ctx, order.ID, itemIDs)
	})
	if err != nil {
		return nil, err
	}

	// Confirmation mail is best-effort and never touches the HTTP outcome.
	go s.sendConfirmation(userID, order, in.Items, priceByID, nameByID)

	return &CreateOrderResult{
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		TotalAmount:  order.TotalAmount,
		OrderItemIDs: itemIDs,
	}, nil
}

func (s *orderService) sendConfirmation(
	userID uint,
	order *model.Order,
	items []OrderItemInput,
	priceByID map[uint]decimal.Decimal,
	nameByID map[uint]string,
) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmationTimeout)
	defer cancel()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Printf("order %s: lookup buyer for confirmation: %v", order.OrderNumber, err)
		return
	}

	confirmation := OrderConfirmation{
		OrderNumber:  order.OrderNumber,
		CustomerName: user.Name,
		Total:        order.TotalAmount,
	}
	for _, item := range items {
		confirmation.Items = append(confirmation.Items, OrderConfirmationItem{
			ProductName: nameByID[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   priceByID[item.ProductID],
		})
	}

	if err := s.mailer.SendOrderConfirmation(user.Email, confirmation); err != nil {
		log.Printf("order %s: confirmation mail: %v", order.OrderNumber, err)
		return
	}
	log.Printf("order %s: confirmation mail sent to %s", order.OrderNumber, user.Email)
}

// ListForUser returns the user's orders, each expanded with its items. The
// stored item-id list drives the lookup, falling back to order_id for rows
// created before the backfill column existed.
func (s *orderService) ListForUser(ctx context.Context, userID uint) ([]OrderWithItems, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]OrderWithItems, 0, len(orders))
	for _, order := range orders {
		var items []model.OrderItemDetail
		if len(order.OrderItemIDs) > 0 {
			items, err = s.orderRepo.ItemsByIDs(ctx, order.OrderItemIDs)
		} else {
			items, err = s.orderRepo.ItemsByOrder(ctx, order.ID)
		}
		if err != nil {
			return nil, err
		}
		result = append(result, OrderWithItems{Order: order, Items: items, ItemsCount: len(items)})
	}
	return result, nil
}

// Get returns one order. Non-admin callers only see their own.
func (s *orderService) Get(ctx context.Context, id, userID uint, isAdmin bool) (*OrderWithItems, error) {
	var order *model.Order
	var err error
	if isAdmin {
		order, err = s.orderRepo.FindByID(ctx, id)
	} else {
		order, err = s.orderRepo.FindByIDForUser(ctx, id, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := s.orderRepo.ItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *order, Items: items, ItemsCount: len(items)}, nil
}

func (s *orderService) ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidOrderStatus
	}
	return s.orderRepo.ListAll(ctx, status)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, apperrors.ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	count, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.RecentDaily(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	statusCounts := make(map[model.OrderStatus]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	return &model.OrderStats{
		TotalOrders:  count,
		TotalRevenue: decimal.NewFromFloat(revenue),
		StatusCounts: statusCounts,
		RecentOrders: recent,
	}, nil
}

// generateOrderNumber derives a unique order number from the creation
// instant plus a random suffix; the unique index on order_number is the
// backstop against the residual collision chance.
func generateOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
