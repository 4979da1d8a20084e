package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusCaptured = "captured"
	PaymentStatusVerified = "verified"
	PaymentStatusFailed   = "failed"
)

type Payment struct {
	PaymentID string    `json:"payment_id" gorm:"primaryKey"`
	OrderID   string    `json:"order_id" gorm:"index"`
	PlanID    string    `json:"plan_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"` // verified, captured, failed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
