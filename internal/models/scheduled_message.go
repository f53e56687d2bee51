package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxMessageLength is the maximum message text length in characters
	MaxMessageLength = 4096
)

var (
	// ErrEmptyRecipient indicates a missing recipient identifier
	ErrEmptyRecipient = errors.New("recipient cannot be empty")

	// ErrInvalidRecipient indicates a recipient with non-digit characters
	ErrInvalidRecipient = errors.New("recipient must contain only digits")

	// ErrEmptyMessageText indicates a missing message body
	ErrEmptyMessageText = errors.New("message text cannot be empty")

	// ErrMessageTooLong indicates a message body over the length limit
	ErrMessageTooLong = errors.New("message text too long")

	// ErrScheduleTimeInPast indicates a schedule time that is not in the future
	ErrScheduleTimeInPast = errors.New("schedule time must be in the future")
)

var recipientPattern = regexp.MustCompile(`^\d+$`)

// MessageStatus tracks the delivery state of a scheduled message
type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
)

// ScheduleRequest is the transient result of parsing a scheduling message
type ScheduleRequest struct {
	MessageText string    `json:"messageText"`
	Recipient   string    `json:"recipient"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// ScheduledMessage is a message accepted for delayed delivery. Its
// invariants are enforced at construction and never relaxed afterwards.
type ScheduledMessage struct {
	ID          string        `json:"id"`
	Recipient   string        `json:"recipient"`
	MessageText string        `json:"messageText"`
	ScheduledAt time.Time     `json:"scheduledAt"`
	Instance    string        `json:"instance"`
	Status      MessageStatus `json:"status"`
}

// NewScheduledMessage validates the parsed fields and builds the entity
func NewScheduledMessage(recipient, messageText string, scheduledAt time.Time, instance string) (*ScheduledMessage, error) {
	if err := validateRecipient(recipient); err != nil {
		return nil, err
	}
	if err := validateMessageText(messageText); err != nil {
		return nil, err
	}
	if err := validateScheduleTime(scheduledAt); err != nil {
		return nil, err
	}

	return &ScheduledMessage{
		ID:          uuid.New().String(),
		Recipient:   recipient,
		MessageText: messageText,
		ScheduledAt: scheduledAt,
		Instance:    instance,
		Status:      StatusPending,
	}, nil
}

func validateRecipient(recipient string) error {
	if strings.TrimSpace(recipient) == "" {
		return ErrEmptyRecipient
	}
	if !recipientPattern.MatchString(recipient) {
		return ErrInvalidRecipient
	}
	return nil
}

func validateMessageText(messageText string) error {
	if strings.TrimSpace(messageText) == "" {
		return ErrEmptyMessageText
	}
	if utf8.RuneCountInString(messageText) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

func validateScheduleTime(scheduledAt time.Time) error {
	if !scheduledAt.After(time.Now()) {
		return ErrScheduleTimeInPast
	}
	return nil
}
