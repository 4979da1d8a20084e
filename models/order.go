package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// DefaultCurrency is the only currency the checkout charges in
const DefaultCurrency = "INR"

// Order is a gateway-side record of an intended charge. Amount is in paise.
type Order struct {
	OrderID   string    `gorm:"primaryKey" json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	PlanID    string    `json:"plan_id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	PaymentID string    `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentVerification carries the checkout callback fields posted by the browser
type PaymentVerification struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	PlanID    string `json:"planId"`
	UserID    string `json:"userId"`
}
