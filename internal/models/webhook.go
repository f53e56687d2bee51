package models

// Payload shapes for the Evolution API messages-upsert webhook. Optional
// sub-objects are pointers so their required fields only apply when the
// object is present.

// MessageKey identifies a single chat message within an instance
type MessageKey struct {
	RemoteJid string `json:"remoteJid" binding:"required"`
	FromMe    *bool  `json:"fromMe" binding:"required"`
	ID        string `json:"id" binding:"required"`
}

// ContactMessage is a shared contact card carrying a vCard string
type ContactMessage struct {
	DisplayName string `json:"displayName"`
	Vcard       string `json:"vcard"`
}

// QuotedMessage is the message being replied to
type QuotedMessage struct {
	ContactMessage *ContactMessage `json:"contactMessage"`
}

// ContextInfo carries reply-context metadata for a message
type ContextInfo struct {
	StanzaID      string         `json:"stanzaId"`
	Participant   string         `json:"participant"`
	QuotedMessage *QuotedMessage `json:"quotedMessage"`
	Expiration    int64          `json:"expiration,omitempty"`
}

// MessageContent holds the message body variants we care about
type MessageContent struct {
	Conversation   string          `json:"conversation,omitempty"`
	ContactMessage *ContactMessage `json:"contactMessage,omitempty"`
}

// MessageData describes one chat message event
type MessageData struct {
	Key              *MessageKey     `json:"key" binding:"required"`
	PushName         string          `json:"pushName"`
	Status           string          `json:"status"`
	Message          *MessageContent `json:"message"`
	ContextInfo      *ContextInfo    `json:"contextInfo"`
	MessageType      string          `json:"messageType"`
	MessageTimestamp int64           `json:"messageTimestamp"`
	InstanceID       string          `json:"instanceId"`
	Source           string          `json:"source"`
}

// WhatsAppWebhookPayload is the inbound webhook body
type WhatsAppWebhookPayload struct {
	Event       string       `json:"event" binding:"required"`
	Instance    string       `json:"instance" binding:"required"`
	Data        *MessageData `json:"data"`
	Destination string       `json:"destination" binding:"required"`
	DateTime    string       `json:"date_time" binding:"required"`
	Sender      string       `json:"sender" binding:"required"`
	ServerURL   string       `json:"server_url" binding:"required"`
	Apikey      string       `json:"apikey" binding:"required"`
}

// Processing outcome classification for a webhook request
const (
	ActionScheduled = "scheduled"
	ActionIgnored   = "ignored"
	ActionError     = "error"
)

// WebhookProcessingResponse is the orchestrator's structured result
type WebhookProcessingResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
