package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/models"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// Feedback reactions placed on the operator's command message
const (
	ReactionSuccess = "✅"
	ReactionError   = "❌"
)

// SchedulingMessageParser extracts scheduling intents from webhook payloads
type SchedulingMessageParser interface {
	ParseSchedulingMessage(payload *models.WhatsAppWebhookPayload) (*models.ScheduleRequest, error)
}

// WhatsAppGateway is the outbound messaging collaborator
type WhatsAppGateway interface {
	AddReaction(instance, messageID, remoteJid, emoji string) error
	SendText(instance, number, text string) error
}

// TaskScheduler is the external durable-delay execution collaborator
type TaskScheduler interface {
	ScheduleMessage(msg *models.ScheduledMessage) (string, error)
}

// SchedulingService coordinates webhook processing: self-message gating,
// intent parsing, entity construction, scheduling and feedback reactions.
type SchedulingService struct {
	parser    SchedulingMessageParser
	gateway   WhatsAppGateway
	scheduler TaskScheduler
}

// NewSchedulingService creates a SchedulingService with its collaborators
func NewSchedulingService(parser SchedulingMessageParser, gateway WhatsAppGateway, scheduler TaskScheduler) *SchedulingService {
	return &SchedulingService{
		parser:    parser,
		gateway:   gateway,
		scheduler: scheduler,
	}
}

// ProcessWebhookMessage runs the full scheduling flow for one webhook event.
// Business failures never propagate; they are folded into the response.
// Exactly one reaction is attempted for any message that passes the
// self-message gate.
func (s *SchedulingService) ProcessWebhookMessage(payload *models.WhatsAppWebhookPayload) *models.WebhookProcessingResponse {
	data := payload.Data
	if data == nil || data.Key == nil || payload.Sender != data.Key.RemoteJid {
		// Ordinary chat traffic; not an error
		logger.Debug("Message not self-addressed, ignoring",
			zap.String("sender", payload.Sender),
		)
		return &models.WebhookProcessingResponse{
			Success: true,
			Action:  models.ActionIgnored,
			Message: "Message not from user, ignored",
		}
	}
	key := data.Key

	request, err := s.parser.ParseSchedulingMessage(payload)
	if err != nil {
		logger.Warn("Message parsing failed",
			zap.String("message_id", key.ID),
			zap.Error(err),
		)
		s.addErrorReaction(payload.Instance, key)
		return &models.WebhookProcessingResponse{
			Success: false,
			Action:  models.ActionError,
			Message: "Invalid message format or missing required information",
			Error:   err.Error(),
		}
	}

	scheduledMessage, err := models.NewScheduledMessage(
		request.Recipient,
		request.MessageText,
		request.ScheduledAt,
		payload.Instance,
	)
	if err != nil {
		logger.Warn("Scheduled message validation failed",
			zap.String("message_id", key.ID),
			zap.String("recipient", request.Recipient),
			zap.Error(err),
		)
		s.addErrorReaction(payload.Instance, key)
		return &models.WebhookProcessingResponse{
			Success: false,
			Action:  models.ActionError,
			Message: "Invalid message format or missing required information",
			Error:   err.Error(),
		}
	}

	taskID, err := s.scheduler.ScheduleMessage(scheduledMessage)
	if err != nil {
		logger.Error("Failed to schedule message",
			zap.String("message_id", key.ID),
			zap.String("recipient", scheduledMessage.Recipient),
			zap.Error(err),
		)
		s.addErrorReaction(payload.Instance, key)
		return &models.WebhookProcessingResponse{
			Success: false,
			Action:  models.ActionError,
			Message: "Internal error processing message",
			Error:   err.Error(),
		}
	}

	logger.Info("Message scheduled",
		zap.String("task_id", taskID),
		zap.String("recipient", scheduledMessage.Recipient),
		zap.Time("scheduled_at", scheduledMessage.ScheduledAt),
	)

	if err := s.gateway.AddReaction(payload.Instance, key.ID, key.RemoteJid, ReactionSuccess); err != nil {
		// Best-effort; the message is already scheduled
		logger.Warn("Failed to add success reaction",
			zap.String("message_id", key.ID),
			zap.Error(err),
		)
	}

	return &models.WebhookProcessingResponse{
		Success: true,
		Action:  models.ActionScheduled,
		Message: fmt.Sprintf("Message scheduled successfully with task ID: %s", taskID),
	}
}

func (s *SchedulingService) addErrorReaction(instance string, key *models.MessageKey) {
	if err := s.gateway.AddReaction(instance, key.ID, key.RemoteJid, ReactionError); err != nil {
		logger.Warn("Failed to add error reaction",
			zap.String("message_id", key.ID),
			zap.Error(err),
		)
	}
}
