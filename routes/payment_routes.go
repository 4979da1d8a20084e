package routes

import (
	"github.com/Govind-619/ClipCraft/config"
	"github.com/Govind-619/ClipCraft/controllers"
	"github.com/Govind-619/ClipCraft/middleware"
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/gin-gonic/gin"
)

func initPaymentRoutes(api *gin.RouterGroup, authService *auth.Service, cfg *config.Config) {
	payment := api.Group("/payment")
	{
		payment.POST("/create-order", controllers.CreateOrder)
		payment.POST("/verify", controllers.VerifyPayment)
		payment.POST("/webhook", controllers.PaymentWebhook)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.AdminMiddleware(cfg.AdminEmail))
	{
		admin.GET("/payments", controllers.ListPayments)
		admin.GET("/payments/export", controllers.ExportPayments)
	}
}
