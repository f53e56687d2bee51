package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ViniciusX22/whatsapp-scheduler/internal/config"
	"github.com/ViniciusX22/whatsapp-scheduler/pkg/logger"
)

func init() {
	logger.SetTestMode(true)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 8080
	cfg.WhatsApp.BaseURL = "http://evolution.local"
	cfg.WhatsApp.APIKey = "test-key"
	cfg.WhatsApp.Instance = "test-instance"
	cfg.Scheduler.BaseURL = "http://trigger.local"
	cfg.Scheduler.APIKey = "test-token"
	return cfg
}

func TestSetupServer(t *testing.T) {
	// Valid configuration
	cfg := testConfig()
	srv, err := SetupServer(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, srv)
	assert.Equal(t, "localhost:8080", srv.Addr)
	srv.Close()

	// Nil configuration
	srv, err = SetupServer(nil)
	assert.Error(t, err)
	assert.Nil(t, srv)

	// Invalid port
	cfg = testConfig()
	cfg.Server.Port = -1
	srv, err = SetupServer(cfg)
	assert.Error(t, err)
	assert.Nil(t, srv)

	// Missing gateway URL
	cfg = testConfig()
	cfg.WhatsApp.BaseURL = ""
	srv, err = SetupServer(cfg)
	assert.Error(t, err)
	assert.Nil(t, srv)

	// Missing scheduler URL
	cfg = testConfig()
	cfg.Scheduler.BaseURL = ""
	srv, err = SetupServer(cfg)
	assert.Error(t, err)
	assert.Nil(t, srv)
}

func TestHandleHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handleHealthCheck)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "whatsapp-scheduler", response["service"])
	assert.NotEmpty(t, response["time"])
	assert.NotEmpty(t, response["version"])
}

func TestHandleStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handleStatus)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"whatsapp-scheduler"}`, w.Body.String())
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := testConfig()

	setupRoutes(router, cfg, nil, nil)

	routes := router.Routes()
	assert.NotEmpty(t, routes)

	want := map[string]string{
		"/":                             "GET",
		"/health":                       "GET",
		"/schedule":                     "POST",
		"/tasks/send-scheduled-message": "POST",
	}
	for path, method := range want {
		found := false
		for _, route := range routes {
			if route.Path == path && route.Method == method {
				found = true
			}
		}
		assert.True(t, found, "route %s %s not registered", method, path)
	}
}

func TestStartServer(t *testing.T) {
	srv := &http.Server{
		Addr:    ":0", // Use port 0 to let the OS assign a random port
		Handler: gin.New(),
	}

	go func() {
		err := StartServer(srv)
		assert.NoError(t, err)
	}()

	// Wait a bit for the server to start
	time.Sleep(100 * time.Millisecond)

	// Send interrupt signal to trigger shutdown
	p, err := os.FindProcess(os.Getpid())
	assert.NoError(t, err)
	err = p.Signal(syscall.SIGINT)
	assert.NoError(t, err)

	// Wait for server to shut down
	time.Sleep(100 * time.Millisecond)
}

func TestStartServerWithContext(t *testing.T) {
	srv := &http.Server{
		Addr:    ":0", // Use port 0 to let the OS assign a random port
		Handler: gin.New(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- StartServerWithContext(ctx, srv)
	}()

	// Wait a bit for the server to start
	time.Sleep(100 * time.Millisecond)

	// Cancel the context to trigger shutdown
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Server didn't shut down within timeout")
	}
}
