package payment

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/utils"
)

// Webhook outcomes
const (
	WebhookProcessed = "processed"
	WebhookDuplicate = "duplicate"
	WebhookIgnored   = "ignored"
)

type paymentEntity struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Amount  int64           `json:"amount"`
	Status  string          `json:"status"`
	Notes   json.RawMessage `json:"notes"`
}

type orderEntity struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity orderEntity `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// notes reads planId/userId. The gateway sends an empty array when there are no notes.
func (p paymentEntity) notes() map[string]string {
	out := map[string]string{}
	if len(p.Notes) == 0 {
		return out
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(p.Notes, &raw); err != nil {
		return out
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// HandleWebhook verifies the signature over the raw body and dispatches the event.
// Deliveries with an event id already seen in the dedup window are acknowledged
// without being processed again. A delivery that fails to process is released
// from the dedup window so the gateway's retry gets another chance.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature, eventID string) (string, error) {
	if !ValidSignature(s.cfg.WebhookSecret, body, signature) {
		utils.LogError("Webhook rejected: invalid signature (event id %q)", eventID)
		return "", utils.NewVerificationError(utils.ErrInvalidSignature)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return "", utils.NewValidationError("Invalid webhook payload")
	}

	marked := false
	if eventID != "" && s.events != nil {
		isNew, err := s.events.MarkProcessed(ctx, eventID, event.Event)
		switch {
		case err != nil:
			utils.LogError("Webhook dedup store failed for %s, processing anyway: %v", eventID, err)
		case !isNew:
			utils.LogInfo("Webhook %s (%s) already processed, skipping", eventID, event.Event)
			return WebhookDuplicate, nil
		default:
			marked = true
		}
	}

	outcome, err := s.dispatch(ctx, event)
	if err != nil && marked {
		if forgetErr := s.events.Forget(ctx, eventID); forgetErr != nil {
			utils.LogError("Failed to release webhook %s after error: %v", eventID, forgetErr)
		}
	}
	return outcome, err
}

func (s *Service) dispatch(ctx context.Context, event webhookEvent) (string, error) {
	switch event.Event {
	case "payment.captured":
		entity := event.Payload.Payment.Entity
		utils.LogInfo("Payment captured: %s", entity.ID)
		return WebhookProcessed, s.recordPayment(ctx, entity, models.PaymentStatusCaptured, models.OrderStatusPaid)
	case "payment.failed":
		entity := event.Payload.Payment.Entity
		utils.LogInfo("Payment failed: %s", entity.ID)
		return WebhookProcessed, s.recordPayment(ctx, entity, models.PaymentStatusFailed, models.OrderStatusFailed)
	case "order.paid":
		order := event.Payload.Order.Entity
		utils.LogInfo("Order paid: %s", order.ID)
		return WebhookProcessed, s.markOrder(ctx, order.ID, models.OrderStatusPaid, event.Payload.Payment.Entity.ID)
	default:
		utils.LogInfo("Unhandled webhook event: %s", event.Event)
		return WebhookIgnored, nil
	}
}

func (s *Service) recordPayment(ctx context.Context, entity paymentEntity, paymentStatus, orderStatus string) error {
	if entity.ID == "" {
		return utils.NewValidationError("Webhook payload has no payment entity")
	}

	payment := &models.Payment{
		PaymentID: entity.ID,
		OrderID:   entity.OrderID,
		Amount:    entity.Amount,
		Status:    paymentStatus,
	}
	notes := entity.notes()
	payment.PlanID, payment.UserID = notes["planId"], notes["userId"]

	if entity.OrderID != "" {
		if order, err := s.store.FindOrder(ctx, entity.OrderID); err == nil {
			payment.PlanID, payment.UserID = order.PlanID, order.UserID
		}
		if err := s.markOrder(ctx, entity.OrderID, orderStatus, entity.ID); err != nil {
			return err
		}
	}
	return s.store.SavePayment(ctx, payment)
}

func (s *Service) markOrder(ctx context.Context, orderID, status, paymentID string) error {
	if orderID == "" {
		return nil
	}
	err := s.store.UpdateOrderStatus(ctx, orderID, status, paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.LogInfo("Webhook refers to unknown order %s, nothing to update", orderID)
		return nil
	}
	return err
}
