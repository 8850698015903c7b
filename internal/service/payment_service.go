package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

// CheckoutSession is the hosted 3-D Secure session handed to the browser.
type CheckoutSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// PaymentService opens hosted checkout sessions and settles gateway
// callbacks against the order they belong to.
type PaymentService interface {
	Checkout(ctx context.Context, orderID uint, email string) (*CheckoutSession, error)
	HandleCallback(ctx context.Context, orderNumber string) (redirectURL string)
}

type paymentService struct {
	orderRepo   repository.OrderRepository
	snapClient  snap.Client
	coreClient  coreapi.Client
	frontendURL string
}

// NewPaymentService creates a payment service bound to the configured
// gateway environment.
func NewPaymentService(orderRepo repository.OrderRepository, serverKey string, sandbox bool, frontendURL string) PaymentService {
	env := midtrans.Production
	if sandbox {
		env = midtrans.Sandbox
	}

	s := &paymentService{orderRepo: orderRepo, frontendURL: frontendURL}
	s.snapClient.New(serverKey, env)
	s.coreClient.New(serverKey, env)
	return s
}

// Checkout opens a hosted payment session for a pending order. The card
// never touches this backend; the gateway collects it and calls back.
func (s *paymentService) Checkout(ctx context.Context, orderID uint, email string) (*CheckoutSession, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderNumber,
			GrossAmt: order.TotalAmount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
	}

	resp, snapErr := s.snapClient.CreateTransaction(req)
	if snapErr != nil {
		log.Printf("payment checkout for order %s: %v", order.OrderNumber, snapErr)
		return nil, apperrors.ErrPaymentGateway
	}

	return &CheckoutSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// HandleCallback settles a gateway notification. The transaction status is
// re-fetched from the gateway rather than trusted from the request body. It
// always yields a browser redirect target; failures land on the failure page.
func (s *paymentService) HandleCallback(ctx context.Context, orderNumber string) string {
	failureURL := fmt.Sprintf("%s/payment/failure", s.frontendURL)

	status, apiErr := s.coreClient.CheckTransaction(orderNumber)
	if apiErr != nil {
		log.Printf("payment callback for order %s: check transaction: %v", orderNumber, apiErr)
		return failureURL
	}

	if !paymentSucceeded(status) {
		log.Printf("payment callback for order %s: status %q", orderNumber, status.TransactionStatus)
		return failureURL
	}

	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		log.Printf("payment callback for order %s: lookup: %v", orderNumber, err)
		return failureURL
	}

	if err := s.orderRepo.SetPayment(ctx, order.ID, status.TransactionID, model.OrderStatusProcessing); err != nil {
		log.Printf("payment callback for order %s: record payment: %v", orderNumber, err)
		return failureURL
	}

	return fmt.Sprintf("%s/payment/success?orderNumber=%s&paymentId=%s", s.frontendURL, orderNumber, status.TransactionID)
}

func paymentSucceeded(status *coreapi.TransactionStatusResponse) bool {
	switch status.TransactionStatus {
	case "capture":
		return status.FraudStatus == "accept"
	case "settlement":
		return true
	}
	return false
}
