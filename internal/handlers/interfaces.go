package handlers

import (
	"github.com/ViniciusX22/whatsapp-scheduler/internal/models"
)

// SchedulingServiceInterface defines the contract for webhook processing
// This interface is used for dependency injection and testing
type SchedulingServiceInterface interface {
	ProcessWebhookMessage(payload *models.WhatsAppWebhookPayload) *models.WebhookProcessingResponse
}

// MessageSenderInterface defines the contract for the outbound text-send
// operation used by the scheduled-task callback
type MessageSenderInterface interface {
	SendText(instance, number, text string) error
}
