package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/clients"
	"github.com/ViniciusX22/whatsapp-scheduler/internal/config"
	"github.com/ViniciusX22/whatsapp-scheduler/internal/handlers"
	"github.com/ViniciusX22/whatsapp-scheduler/internal/services"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/middleware"
)

var version = "dev"

// Webhook payloads are small; anything bigger than this is not a
// legitimate message event.
const maxRequestBody = 1 << 20

// SetupServer initializes and returns a configured HTTP server
func SetupServer(cfg *config.Config) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Outbound clients
	whatsappClient := clients.NewEvolutionClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.APIKey)
	triggerClient := clients.NewTriggerClient(cfg.Scheduler.BaseURL, cfg.Scheduler.APIKey, cfg.Scheduler.TaskID)

	// Parsing and orchestration
	dateParser := services.NewWhenDateParser(cfg.Locale.Code)
	messageParser := services.NewMessageParser(dateParser, cfg.Locale.Timezone)
	schedulingService := services.NewSchedulingService(messageParser, whatsappClient, triggerClient)

	router := gin.New()
	router.Use(gin.Recovery())

	setupRoutes(router, cfg, schedulingService, whatsappClient)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

// setupRoutes configures all the HTTP routes
func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	schedulingService handlers.SchedulingServiceInterface,
	sender handlers.MessageSenderInterface,
) {
	router.Use(
		middleware.SecurityHeadersMiddleware(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLogMiddleware(),
		middleware.RequestSizeLimitMiddleware(maxRequestBody),
	)

	webhookHandler := handlers.NewWebhookHandler(schedulingService)
	taskHandler := handlers.NewTaskHandler(sender, cfg.WhatsApp.Instance)

	// Status endpoints (public)
	router.GET("/", handleStatus)
	router.GET("/health", handleHealthCheck)

	// Webhook entry point for message events
	router.POST("/schedule", webhookHandler.HandleSchedule)

	// Fire-time callback from the task scheduler
	router.POST("/tasks/send-scheduled-message", taskHandler.HandleSendScheduledMessage)
}

// handleStatus answers gateway liveness probes on the root path
func handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "whatsapp-scheduler",
	})
}

// handleHealthCheck handles the health check endpoint
func handleHealthCheck(c *gin.Context) {
	logger.Debug("Health check endpoint called")
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"version": version,
		"service": "whatsapp-scheduler",
	})
}

// StartServer starts the HTTP server and handles graceful shutdown
func StartServer(srv *http.Server) error {
	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a timeout context for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// StartServerWithContext starts the HTTP server with a context for shutdown control
func StartServerWithContext(ctx context.Context, srv *http.Server) error {
	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	logger.Info("Shutting down server...")

	// Create a timeout context for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
