package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/models"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// TriggerClient schedules deferred send tasks on a Trigger-style task
// service. The service owns the waiting; this client only enqueues.
type TriggerClient struct {
	baseURL string
	apiKey  string
	taskID  string
	client  *http.Client
}

// NewTriggerClient creates a client for the task service at baseURL.
// taskID names the deferred task to trigger.
func NewTriggerClient(baseURL, apiKey, taskID string) *TriggerClient {
	return &TriggerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		taskID:  taskID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type taskPayload struct {
	Recipient   string `json:"recipient"`
	Message     string `json:"message"`
	ScheduledAt string `json:"scheduledAt"`
}

type triggerRequest struct {
	Payload taskPayload `json:"payload"`
}

type triggerResponse struct {
	ID string `json:"id"`
}

// ScheduleMessage enqueues a deferred send task and returns its task id
func (c *TriggerClient) ScheduleMessage(msg *models.ScheduledMessage) (string, error) {
	body, err := json.Marshal(triggerRequest{
		Payload: taskPayload{
			Recipient:   msg.Recipient,
			Message:     msg.MessageText,
			ScheduledAt: msg.ScheduledAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode trigger request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/tasks/%s/trigger", c.baseURL, c.taskID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call trigger API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("trigger API returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}

	var result triggerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode trigger response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("trigger API response has no task id")
	}

	logger.Info("Scheduled message task created",
		zap.String("task_id", result.ID),
		zap.String("recipient", msg.Recipient),
		zap.Time("scheduled_at", msg.ScheduledAt),
	)

	return result.ID, nil
}
