package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// SendScheduledMessageRequest is the task service's fire-time callback body.
// It mirrors the payload handed to the scheduler when the task was created.
type SendScheduledMessageRequest struct {
	Recipient   string `json:"recipient" binding:"required"`
	Message     string `json:"message" binding:"required"`
	ScheduledAt string `json:"scheduledAt"`
	Instance    string `json:"instance"`
}

// TaskHandler handles callbacks from the external task scheduler
type TaskHandler struct {
	sender          MessageSenderInterface
	defaultInstance string
}

// NewTaskHandler creates a new task callback handler. defaultInstance is
// used when the callback carries no instance of its own.
func NewTaskHandler(sender MessageSenderInterface, defaultInstance string) *TaskHandler {
	return &TaskHandler{
		sender:          sender,
		defaultInstance: defaultInstance,
	}
}

// HandleSendScheduledMessage performs the deferred send when the task
// service fires (POST /tasks/send-scheduled-message). The scheduler owns
// the waiting; by the time this runs the scheduled time has arrived.
func (h *TaskHandler) HandleSendScheduledMessage(c *gin.Context) {
	var req SendScheduledMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid scheduled-send callback", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	instance := req.Instance
	if instance == "" {
		instance = h.defaultInstance
	}

	logger.Info("Sending scheduled message",
		zap.String("recipient", req.Recipient),
		zap.String("instance", instance),
		zap.String("scheduled_at", req.ScheduledAt),
	)

	if err := h.sender.SendText(instance, req.Recipient, req.Message); err != nil {
		logger.Error("Failed to send scheduled message",
			zap.String("recipient", req.Recipient),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Scheduled message sent successfully",
		"sentAt":    time.Now().UTC().Format(time.RFC3339),
		"recipient": req.Recipient,
	})
}
