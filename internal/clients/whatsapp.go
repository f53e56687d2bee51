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

	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

// EvolutionClient talks to an Evolution API gateway for reactions and
// text sends. Instances are addressed through the URL path.
type EvolutionClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewEvolutionClient creates a client for the gateway at baseURL
func NewEvolutionClient(baseURL, apiKey string) *EvolutionClient {
	return &EvolutionClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type reactionKey struct {
	ID        string `json:"id"`
	FromMe    bool   `json:"fromMe"`
	RemoteJid string `json:"remoteJid"`
}

type reactionRequest struct {
	Key      reactionKey `json:"key"`
	Reaction string      `json:"reaction"`
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// AddReaction places an emoji reaction on a message
func (c *EvolutionClient) AddReaction(instance, messageID, remoteJid, emoji string) error {
	logger.Debug("Adding reaction",
		zap.String("instance", instance),
		zap.String("message_id", messageID),
		zap.String("emoji", emoji),
	)

	payload := reactionRequest{
		Key: reactionKey{
			ID:        messageID,
			FromMe:    true,
			RemoteJid: remoteJid,
		},
		Reaction: emoji,
	}

	return c.post(fmt.Sprintf("/message/sendReaction/%s", instance), payload)
}

// SendText sends a plain text message to a recipient number
func (c *EvolutionClient) SendText(instance, number, text string) error {
	logger.Debug("Sending text message",
		zap.String("instance", instance),
		zap.String("number", number),
	)

	return c.post(fmt.Sprintf("/message/sendText/%s", instance), sendTextRequest{
		Number: number,
		Text:   text,
	})
}

func (c *EvolutionClient) post(endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call evolution API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("evolution API returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}

	return nil
}
