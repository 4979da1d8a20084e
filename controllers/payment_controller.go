package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout order body. Amount is in paise.
type CreateOrderRequest struct {
	PlanID string `json:"planId"`
	Amount int64  `json:"amount"`
	UserID string `json:"userId"`
}

// CreateOrder handles POST /api/payment/create-order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Create order - invalid request: %v", err)
		utils.BadRequest(c, utils.ErrMissingOrderFields)
		return
	}

	order, err := deps.Payments.CreateOrder(c.Request.Context(), req.PlanID, req.Amount, req.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"orderId":  order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    deps.Payments.KeyID(),
	})
}

// VerifyPayment handles POST /api/payment/verify
func VerifyPayment(c *gin.Context) {
	var req models.PaymentVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Verify payment - invalid request: %v", err)
		utils.BadRequest(c, utils.ErrMissingOrderFields)
		return
	}

	payment, err := deps.Payments.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message":   utils.MsgPaymentVerified,
		"paymentId": payment.PaymentID,
	})
}

// PaymentWebhook handles gateway callbacks. The signature covers the raw body,
// so it is read before any decoding.
func PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Failed to read body")
		return
	}

	outcome, err := deps.Payments.HandleWebhook(c.Request.Context(), body,
		c.GetHeader(utils.WebhookSignatureHeader), c.GetHeader(utils.WebhookEventIDHeader))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "outcome": outcome})
}

// GetPlans handles GET /api/plans
func GetPlans(c *gin.Context) {
	utils.Success(c, gin.H{"plans": deps.Payments.Plans()})
}

// ListPayments returns recorded payments a page at a time
func ListPayments(c *gin.Context) {
	pagination := utils.NewPagination(c)
	payments, total, err := deps.Payments.ListPayments(c.Request.Context(), pagination.Offset, pagination.Limit)
	if err != nil {
		utils.LogError("Failed to list payments: %v", err)
		utils.InternalServerError(c, "Failed to list payments")
		return
	}

	pagination.SetTotal(total)
	utils.SendPaginatedResponse(c, "payments", payments, pagination)
}

// ExportPayments streams every recorded payment as an xlsx workbook
func ExportPayments(c *gin.Context) {
	data, err := deps.Payments.ExportPayments(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to export payments: %v", err)
		utils.InternalServerError(c, "Failed to export payments")
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
