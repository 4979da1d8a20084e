// Package payment wraps the Razorpay checkout flow: order creation,
// checkout signature verification and webhook handling.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator is the part of the Razorpay client used to create orders
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Config holds the gateway credentials
type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
}

// Service runs the checkout flow
type Service struct {
	cfg    Config
	orders OrderCreator
	store  repository.OrderRepository
	events repository.WebhookEventRepository
	users  repository.UserRepository
	mailer utils.Mailer
	now    func() time.Time
}

// NewService builds the payment service. Without key id and secret, order
// creation fails with a GatewayError.
func NewService(cfg Config, store repository.OrderRepository, events repository.WebhookEventRepository,
	users repository.UserRepository, mailer utils.Mailer) *Service {
	s := &Service{
		cfg:    cfg,
		store:  store,
		events: events,
		users:  users,
		mailer: mailer,
		now:    time.Now,
	}
	if cfg.KeyID != "" && cfg.KeySecret != "" {
		s.orders = razorpay.NewClient(cfg.KeyID, cfg.KeySecret).Order
	}
	return s
}

// WithOrderCreator replaces the Razorpay order client
func (s *Service) WithOrderCreator(oc OrderCreator) *Service {
	s.orders = oc
	return s
}

// KeyID is the public key the checkout widget needs
func (s *Service) KeyID() string {
	return s.cfg.KeyID
}

// Plans returns the pricing catalog
func (s *Service) Plans() []models.Plan {
	return models.Plans
}

// CreateOrder creates a gateway order for a plan and records it
func (s *Service) CreateOrder(ctx context.Context, planID string, amount int64, userID string) (*models.Order, error) {
	if utils.AnyBlank(planID, userID) || amount <= 0 {
		return nil, utils.NewValidationError(utils.ErrMissingOrderFields)
	}
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" || s.orders == nil {
		return nil, utils.NewGatewayError("Payment gateway not configured", nil)
	}

	receipt := fmt.Sprintf("order_%s_%d", userID, s.now().UnixMilli())
	data := map[string]interface{}{
		"amount":   amount,
		"currency": models.DefaultCurrency,
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"planId": planID,
			"userId": userID,
		},
	}

	rzOrder, err := s.orders.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create Razorpay order for user %s plan %s: %v", userID, planID, err)
		return nil, utils.NewGatewayError("Failed to create order", err)
	}

	orderID, _ := rzOrder["id"].(string)
	if orderID == "" {
		return nil, utils.NewGatewayError("Failed to create order", errors.New("gateway returned no order id"))
	}

	order := &models.Order{
		OrderID:  orderID,
		Amount:   int64Field(rzOrder["amount"], amount),
		Currency: stringField(rzOrder["currency"], models.DefaultCurrency),
		PlanID:   planID,
		UserID:   userID,
		Receipt:  receipt,
		Status:   models.OrderStatusCreated,
	}
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, utils.WrapError(err, "failed to save order")
	}

	utils.LogInfo("Created Razorpay order %s for user %s plan %s (%d paise)", orderID, userID, planID, order.Amount)
	return order, nil
}

// VerifyPayment checks the checkout signature and records the payment. The
// confirmation email is sent in the background and never fails verification.
func (s *Service) VerifyPayment(ctx context.Context, v models.PaymentVerification) (*models.Payment, error) {
	if utils.AnyBlank(v.OrderID, v.PaymentID, v.Signature) {
		return nil, utils.NewValidationError(utils.ErrMissingOrderFields)
	}

	if !ValidSignature(s.cfg.KeySecret, PaymentSignaturePayload(v.OrderID, v.PaymentID), v.Signature) {
		utils.LogError("Payment verification failed for order %s payment %s", v.OrderID, v.PaymentID)
		return nil, utils.NewVerificationError(utils.ErrPaymentVerification)
	}

	payment := &models.Payment{
		PaymentID: v.PaymentID,
		OrderID:   v.OrderID,
		PlanID:    v.PlanID,
		UserID:    v.UserID,
		Status:    models.PaymentStatusVerified,
	}

	order, err := s.store.FindOrder(ctx, v.OrderID)
	switch {
	case err == nil:
		if v.PlanID != "" && order.PlanID != v.PlanID {
			utils.LogError("Plan mismatch for order %s: expected %s, received %s", v.OrderID, order.PlanID, v.PlanID)
			return nil, utils.NewVerificationError(utils.ErrPaymentVerification)
		}
		payment.PlanID = order.PlanID
		payment.Amount = order.Amount
		if payment.UserID == "" {
			payment.UserID = order.UserID
		}
		if err := s.store.UpdateOrderStatus(ctx, order.OrderID, models.OrderStatusPaid, v.PaymentID); err != nil {
			return nil, utils.WrapError(err, "failed to update order")
		}
	case errors.Is(err, repository.ErrNotFound):
		// orders created before a restart are not in the memory store
		if plan, ok := models.FindPlan(v.PlanID); ok {
			payment.Amount = plan.Amount
		}
	default:
		return nil, utils.WrapError(err, "failed to load order")
	}

	if err := s.store.SavePayment(ctx, payment); err != nil {
		return nil, utils.WrapError(err, "failed to save payment")
	}
	utils.LogInfo("Payment verified: order %s payment %s plan %s", v.OrderID, v.PaymentID, payment.PlanID)

	s.sendConfirmation(ctx, *payment)
	return payment, nil
}

func (s *Service) sendConfirmation(ctx context.Context, payment models.Payment) {
	if s.mailer == nil || s.users == nil || payment.UserID == "" {
		return
	}
	user, err := s.users.FindByID(ctx, payment.UserID)
	if err != nil {
		utils.LogError("No recipient for payment %s confirmation (user %s): %v", payment.PaymentID, payment.UserID, err)
		return
	}

	planName := payment.PlanID
	if plan, ok := models.FindPlan(payment.PlanID); ok {
		planName = plan.Name
	}

	email := utils.PaymentSuccessEmail(user.Email, planName, payment.Amount, payment.PaymentID, payment.OrderID, s.cfg.BaseURL)
	receipt, err := utils.PaymentReceiptPDF(utils.ReceiptData{
		PaymentID: payment.PaymentID,
		OrderID:   payment.OrderID,
		PlanName:  planName,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		PaidAt:    s.now(),
	})
	if err != nil {
		utils.LogError("Failed to render receipt for payment %s: %v", payment.PaymentID, err)
	} else {
		email.Attachments = append(email.Attachments, utils.Attachment{
			Name: "receipt-" + payment.PaymentID + ".pdf",
			Data: receipt,
		})
	}
	utils.SendAsync(s.mailer, email)
}

// ExportPayments renders every recorded payment as an xlsx workbook
func (s *Service) ExportPayments(ctx context.Context) ([]byte, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, utils.WrapError(err, "failed to list payments")
	}
	return utils.PaymentsWorkbook(payments)
}

// ListPayments returns one page of recorded payments, newest first, and the total count
func (s *Service) ListPayments(ctx context.Context, offset, limit int) ([]models.Payment, int64, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, 0, utils.WrapError(err, "failed to list payments")
	}

	total := int64(len(payments))
	if offset >= len(payments) {
		return []models.Payment{}, total, nil
	}
	end := offset + limit
	if end > len(payments) {
		end = len(payments)
	}
	return payments[offset:end], total, nil
}

func stringField(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// int64Field reads a JSON number the gateway client decoded as float64
func int64Field(v interface{}, fallback int64) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
