package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration settings
type Config struct {
	Server struct {
		Port int    `json:"port"`
		Host string `json:"host"`
	} `json:"server"`
	WhatsApp struct {
		BaseURL  string `json:"base_url"`
		APIKey   string `json:"api_key"`
		Instance string `json:"instance"`
	} `json:"whatsapp"`
	Scheduler struct {
		BaseURL string `json:"base_url"`
		APIKey  string `json:"api_key"`
		TaskID  string `json:"task_id"`
	} `json:"scheduler"`
	Locale struct {
		Code     string `json:"code"`
		Timezone string `json:"timezone"`
	} `json:"locale"`
	Logging struct {
		Level string `json:"level"`
		Path  string `json:"path"`
	} `json:"logging"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.Server.Port = 3000
	config.Server.Host = "localhost"
	config.Scheduler.TaskID = "send-scheduled-message"
	config.Locale.Code = DefaultLocale
	config.Logging.Level = "info"
	config.Logging.Path = "server.log"
	return config
}

// Load builds the configuration from environment variables, reading an
// optional .env file first. Unset variables keep their defaults.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	config := DefaultConfig()

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", port, err)
		}
		config.Server.Port = p
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Server.Host = host
	}

	config.WhatsApp.BaseURL = getEnv("EVOLUTION_API_URL", config.WhatsApp.BaseURL)
	config.WhatsApp.APIKey = getEnv("EVOLUTION_API_KEY", config.WhatsApp.APIKey)
	config.WhatsApp.Instance = getEnv("EVOLUTION_INSTANCE", config.WhatsApp.Instance)

	config.Scheduler.BaseURL = getEnv("TRIGGER_API_URL", config.Scheduler.BaseURL)
	config.Scheduler.APIKey = getEnv("TRIGGER_API_KEY", config.Scheduler.APIKey)
	config.Scheduler.TaskID = getEnv("TRIGGER_TASK_ID", config.Scheduler.TaskID)

	config.Locale.Code = getEnv("LOCALE", config.Locale.Code)
	// Timezone default comes from the locale unless overridden explicitly
	locale := GetLocaleConfig(config.Locale.Code)
	config.Locale.Timezone = getEnv("TIMEZONE", locale.Timezone)

	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Path = getEnv("LOG_PATH", config.Logging.Path)

	return config, nil
}

// Validate checks that the settings required for outbound calls are present
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.WhatsApp.BaseURL == "" {
		return fmt.Errorf("EVOLUTION_API_URL is required")
	}
	if c.Scheduler.BaseURL == "" {
		return fmt.Errorf("TRIGGER_API_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
