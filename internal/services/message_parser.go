package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/models"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// ErrNotSchedulingMessage indicates the payload does not encode a
// "schedule a message" intent. Every extraction failure wraps it.
var ErrNotSchedulingMessage = errors.New("message is not a scheduling request")

// dateLinePrefix marks the line carrying the date/time phrase, e.g.
// "> tomorrow at 10am". The prefix is an ad hoc chat convention, not
// markdown quoting.
const dateLinePrefix = "> "

// waidPattern extracts the WhatsApp numeric id from a vCard string
var waidPattern = regexp.MustCompile(`waid=(\d+)`)

// MessageParser decides whether a webhook payload encodes a scheduling
// intent and extracts the message text, recipient and target time.
type MessageParser struct {
	dateParser DateParser
	timezone   string
}

// NewMessageParser creates a MessageParser using the given date parser and
// timezone for resolving date phrases.
func NewMessageParser(dateParser DateParser, timezone string) *MessageParser {
	return &MessageParser{
		dateParser: dateParser,
		timezone:   timezone,
	}
}

// ParseSchedulingMessage validates the message structure and extracts a
// ScheduleRequest. All steps must pass; the first failure returns an error
// wrapping ErrNotSchedulingMessage with no partial result.
func (p *MessageParser) ParseSchedulingMessage(payload *models.WhatsAppWebhookPayload) (*models.ScheduleRequest, error) {
	data := payload.Data
	if data == nil || data.Message == nil {
		return nil, fmt.Errorf("%w: no message data", ErrNotSchedulingMessage)
	}

	if data.MessageType != "conversation" {
		return nil, fmt.Errorf("%w: message type %q is not a conversation", ErrNotSchedulingMessage, data.MessageType)
	}

	body := data.Message.Conversation
	if body == "" {
		return nil, fmt.Errorf("%w: empty message body", ErrNotSchedulingMessage)
	}

	contact := quotedContact(data.ContextInfo)
	if contact == nil {
		return nil, fmt.Errorf("%w: no quoted contact card", ErrNotSchedulingMessage)
	}

	messageText, datePhrase, found := splitBody(body)
	if !found {
		return nil, fmt.Errorf("%w: no %q date line", ErrNotSchedulingMessage, dateLinePrefix)
	}
	if messageText == "" {
		return nil, fmt.Errorf("%w: message text empty after removing date line", ErrNotSchedulingMessage)
	}

	recipient := extractWaid(contact.Vcard)
	if recipient == "" {
		return nil, fmt.Errorf("%w: quoted vCard has no waid", ErrNotSchedulingMessage)
	}

	scheduledAt, err := p.dateParser.Parse(datePhrase, p.timezone)
	if err != nil {
		logger.Debug("Date phrase did not resolve",
			zap.String("phrase", datePhrase),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: unparseable date phrase %q", ErrNotSchedulingMessage, datePhrase)
	}

	return &models.ScheduleRequest{
		MessageText: messageText,
		Recipient:   recipient,
		ScheduledAt: scheduledAt,
	}, nil
}

// splitBody separates the message body into the text to deliver and the
// date phrase. Every "> " line is excluded from the text; the first one
// provides the phrase.
func splitBody(body string) (messageText, datePhrase string, found bool) {
	var textLines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, dateLinePrefix) {
			if phrase := strings.TrimSpace(strings.TrimPrefix(line, dateLinePrefix)); !found && phrase != "" {
				datePhrase = phrase
				found = true
			}
			continue
		}
		textLines = append(textLines, line)
	}
	return strings.TrimSpace(strings.Join(textLines, "\n")), datePhrase, found
}

func quotedContact(contextInfo *models.ContextInfo) *models.ContactMessage {
	if contextInfo == nil || contextInfo.QuotedMessage == nil {
		return nil
	}
	return contextInfo.QuotedMessage.ContactMessage
}

func extractWaid(vcard string) string {
	match := waidPattern.FindStringSubmatch(vcard)
	if match == nil {
		return ""
	}
	return match[1]
}
