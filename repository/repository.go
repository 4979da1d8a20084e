// Package repository holds the stores behind the auth and payment services.
// Each store has an in-memory implementation and a gorm one used when a
// database is configured.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Govind-619/ClipCraft/models"
)

var (
	// ErrNotFound is returned when a lookup matches nothing
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key already exists
	ErrDuplicate = errors.New("duplicate entry")
)

// UserRepository stores accounts
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Create inserts the user, failing with ErrDuplicate if the email exists.
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// OrderRepository stores checkout orders and their payments
type OrderRepository interface {
	SaveOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status, paymentID string) error
	// SavePayment inserts or replaces a payment keyed by PaymentID
	SavePayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

// WebhookEventRepository remembers processed webhook deliveries
type WebhookEventRepository interface {
	// MarkProcessed records eventID and reports whether it was new within the TTL
	MarkProcessed(ctx context.Context, eventID, event string) (bool, error)
	// Forget releases eventID so a redelivery is processed again
	Forget(ctx context.Context, eventID string) error
}

// DefaultWebhookTTL is how long a delivery id is remembered
const DefaultWebhookTTL = 24 * time.Hour
