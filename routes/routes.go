package routes

import (
	"net/http"

	"github.com/Govind-619/ClipCraft/config"
	"github.com/Govind-619/ClipCraft/controllers"
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SetupRouter initializes and returns the Gin router with all routes.
// controllers.Setup must have been called first.
func SetupRouter(cfg *config.Config, authService *auth.Service) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware(cfg.CORSOrigins()))
	router.Use(utils.SecurityHeadersMiddleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   int(auth.DefaultTokenTTL.Seconds()),
		Path:     "/",
		Secure:   cfg.Env == "production",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(utils.SessionName, store))

	limiter := utils.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	limited := utils.RateLimitMiddleware(limiter)

	router.GET("/health", controllers.Health)

	api := router.Group("/api")
	{
		initAuthRoutes(api, limited, cfg)

		api.POST("/contact", limited, controllers.SubmitContact)
		api.POST("/generate-video", limited, controllers.GenerateVideo)
		api.GET("/test-fal", controllers.TestFal)
		api.GET("/plans", controllers.GetPlans)

		initPaymentRoutes(api, authService, cfg)
	}

	return router
}
