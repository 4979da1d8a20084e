package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/ClipCraft/config"
	"github.com/Govind-619/ClipCraft/controllers"
	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/routes"
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/Govind-619/ClipCraft/services/payment"
	"github.com/Govind-619/ClipCraft/services/video"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-gonic/gin"
)

type stores struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	events repository.WebhookEventRepository
}

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	for _, notice := range cfg.Notices {
		utils.LogInfo("%s", notice)
	}
	for _, warning := range cfg.Warnings {
		utils.LogError("%s", warning)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := initStores(cfg)
	if err != nil {
		utils.LogError("Failed to initialize stores: %v", err)
		log.Fatal("Failed to initialize stores:", err)
	}

	mailer := utils.NewMailer(cfg.EmailConfig())
	authService := auth.NewService(st.users, mailer, cfg.SessionSecret, cfg.BaseURL)

	var providers []video.Provider
	if cfg.FalKey != "" {
		providers = append(providers, video.NewFalProvider(video.FalConfig{
			Key:     cfg.FalKey,
			BaseURL: "https://" + cfg.FalHost,
		}))
	}
	if cfg.ReplicateAPIToken != "" {
		replicateProvider, err := video.NewReplicateProvider(video.ReplicateConfig{
			Token:   cfg.ReplicateAPIToken,
			BaseURL: cfg.ReplicateAPIURL,
		})
		if err != nil {
			utils.LogError("Replicate provider disabled: %v", err)
		} else {
			providers = append(providers, replicateProvider)
		}
	}
	if len(providers) == 0 {
		utils.LogError("No video provider configured, set FAL_KEY or REPLICATE_API_TOKEN")
	}

	payments := payment.NewService(payment.Config{
		KeyID:         cfg.RazorpayKeyID,
		KeySecret:     cfg.RazorpayKeySecret,
		WebhookSecret: cfg.RazorpayWebhookSecret,
		BaseURL:       cfg.BaseURL,
	}, st.orders, st.events, st.users, mailer)

	deps := &controllers.Dependencies{
		Auth:     authService,
		Video:    video.NewProxy(mailer, providers...),
		Prober:   video.NewProber(cfg.FalKey, probeEndpoints(cfg), nil),
		Payments: payments,
		Mailer:   mailer,

		AdminEmail: cfg.AdminEmail,
		BaseURL:    cfg.BaseURL,
	}
	if cfg.GoogleEnabled() {
		deps.GoogleOAuth = config.GoogleOAuthConfig(cfg)
	}
	controllers.Setup(deps)

	// Set up router
	router := routes.SetupRouter(cfg, authService)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			log.Fatal("Error starting server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.LogError("Graceful shutdown failed: %v", err)
	}
	utils.LogInfo("Server stopped")
}

// initStores uses Postgres when DB_HOST is set, otherwise in-memory stores.
// Either way the demo account exists.
func initStores(cfg *config.Config) (*stores, error) {
	if !cfg.DatabaseEnabled() {
		utils.LogInfo("DB_HOST not set, using in-memory stores")
		return &stores{
			users:  repository.NewMemoryUserRepository(auth.DemoUser()),
			orders: repository.NewMemoryOrderRepository(),
			events: repository.NewMemoryWebhookEventRepository(repository.DefaultWebhookTTL),
		}, nil
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	st := &stores{
		users:  repository.NewGormUserRepository(db),
		orders: repository.NewGormOrderRepository(db),
		events: repository.NewGormWebhookEventRepository(db, repository.DefaultWebhookTTL),
	}

	if err := st.users.Create(context.Background(), auth.DemoUser()); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}
	return st, nil
}

func probeEndpoints(cfg *config.Config) []string {
	if cfg.FalAPIHost == "" || cfg.FalAPIHost == "api.fal.ai" {
		return video.DefaultProbeEndpoints
	}
	return []string{"https://" + cfg.FalAPIHost + "/v1/models", video.DefaultProbeEndpoints[1]}
}
