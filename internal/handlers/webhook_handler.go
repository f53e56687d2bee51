package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/models"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// WebhookHandler handles inbound WhatsApp webhook events
type WebhookHandler struct {
	schedulingService SchedulingServiceInterface
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(schedulingService SchedulingServiceInterface) *WebhookHandler {
	return &WebhookHandler{
		schedulingService: schedulingService,
	}
}

// HandleSchedule handles the webhook endpoint (POST /schedule).
// Structural validation happens here; a malformed body is rejected with
// 400 before any business logic runs. A structurally valid payload always
// answers 200 with the orchestrator's classification, even when the
// business outcome is an error.
func (h *WebhookHandler) HandleSchedule(c *gin.Context) {
	logger.Debug("Schedule webhook endpoint called")

	var payload models.WhatsAppWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warn("Invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if payload.Data == nil {
		logger.Warn("Webhook payload missing data object",
			zap.String("event", payload.Event),
			zap.String("instance", payload.Instance),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": "data object is required",
		})
		return
	}

	response := h.schedulingService.ProcessWebhookMessage(&payload)

	logger.Info("Webhook processed",
		zap.String("instance", payload.Instance),
		zap.String("action", response.Action),
		zap.Bool("success", response.Success),
	)

	c.JSON(http.StatusOK, response)
}
