package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func performSendRequest(t *testing.T, handler *TaskHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/tasks/send-scheduled-message", handler.HandleSendScheduledMessage)

	req := httptest.NewRequest(http.MethodPost, "/tasks/send-scheduled-message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_SendScheduledMessage(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendText", "my-instance", "5511999999999", "Hello Bob").Return(nil)

	handler := NewTaskHandler(sender, "default-instance")

	body, err := json.Marshal(map[string]interface{}{
		"recipient":   "5511999999999",
		"message":     "Hello Bob",
		"scheduledAt": "2026-09-01T10:00:00Z",
		"instance":    "my-instance",
	})
	require.NoError(t, err)

	w := performSendRequest(t, handler, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "5511999999999", response["recipient"])
	assert.NotEmpty(t, response["sentAt"])

	sender.AssertExpectations(t)
}

func TestTaskHandler_DefaultInstance(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendText", "default-instance", "5511999999999", "Hello Bob").Return(nil)

	handler := NewTaskHandler(sender, "default-instance")

	body, err := json.Marshal(map[string]interface{}{
		"recipient": "5511999999999",
		"message":   "Hello Bob",
	})
	require.NoError(t, err)

	w := performSendRequest(t, handler, body)

	assert.Equal(t, http.StatusOK, w.Code)
	sender.AssertExpectations(t)
}

func TestTaskHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing recipient",
			body: map[string]interface{}{"message": "Hello Bob"},
		},
		{
			name: "missing message",
			body: map[string]interface{}{"recipient": "5511999999999"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(MockSender)
			handler := NewTaskHandler(sender, "default-instance")

			body, err := json.Marshal(tt.body)
			require.NoError(t, err)

			w := performSendRequest(t, handler, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_SendFailure(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendText", "default-instance", "5511999999999", "Hello Bob").
		Return(errors.New("gateway unreachable"))

	handler := NewTaskHandler(sender, "default-instance")

	body, err := json.Marshal(map[string]interface{}{
		"recipient": "5511999999999",
		"message":   "Hello Bob",
	})
	require.NoError(t, err)

	w := performSendRequest(t, handler, body)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "gateway unreachable")
}
