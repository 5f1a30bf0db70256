package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var (
	config     *Config
	configOnce sync.Once
)

// DefaultMockAPISecret signs mock API tokens when MOCK_API_SECRET is unset.
// It only protects stub payloads and must not be reused for anything real.
const DefaultMockAPISecret = "jenkins-test-app-mock-signing-key"

type Config struct {
	Server struct {
		Port     string `json:"port"`
		Host     string `json:"host"`
		BaseURL  string `json:"base_url"`
		LogLevel string `json:"log_level"`
	} `json:"server"`

	MockAPI struct {
		Enabled       bool   `json:"enabled"`
		SigningKey    string `json:"signing_key"`
		TokenTTLHours int    `json:"token_ttl_hours"`
	} `json:"mock_api"`

	Logging struct {
		Directory  string `json:"directory"`
		MaxSize    int64  `json:"max_size"`
		MaxBackups int    `json:"max_backups"`
	} `json:"logging"`
}

// Address returns host:port for the HTTP listener
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LoadConfig loads the configuration from environment variables and optional JSON file.
// The build environment shown on the page is not part of it; the page reads
// APP_ENV itself on every render.
func LoadConfig() (*Config, error) {
	var err error
	configOnce.Do(func() {
		cfg := &Config{}

		// Load .env file if it exists
		godotenv.Load()

		if err = loadDefaultConfig(cfg); err != nil {
			return
		}

		// Override with environment variables
		if err = loadEnvConfig(cfg); err != nil {
			return
		}

		// Load JSON config if specified
		if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
			if err = loadJSONConfig(cfg, configPath); err != nil {
				return
			}
		}

		if err = validateConfig(cfg); err != nil {
			return
		}

		config = cfg
	})

	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("configuration failed to load earlier; call ResetConfigForTest to retry")
	}

	return config, nil
}

func loadDefaultConfig(cfg *Config) error {
	cfg.Server.Port = "3000"
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.LogLevel = "INFO"
	cfg.MockAPI.Enabled = false
	cfg.MockAPI.SigningKey = DefaultMockAPISecret
	cfg.MockAPI.TokenTTLHours = 24
	cfg.Logging.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Logging.MaxBackups = 5

	return nil
}

func loadEnvConfig(cfg *Config) error {
	// Server configuration
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		cfg.Server.BaseURL = baseURL
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Server.LogLevel = strings.ToUpper(level)
	}

	// Logging configuration; an empty directory keeps logs on stdout
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		cfg.Logging.Directory = dir
	}

	// Mock API configuration
	if enabled := os.Getenv("MOCK_API_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid MOCK_API_ENABLED %q: %w", enabled, err)
		}
		cfg.MockAPI.Enabled = v
	}
	if secret := os.Getenv("MOCK_API_SECRET"); secret != "" {
		cfg.MockAPI.SigningKey = secret
	}
	if ttl := os.Getenv("MOCK_API_TOKEN_TTL_HOURS"); ttl != "" {
		hours, err := strconv.Atoi(ttl)
		if err != nil {
			return fmt.Errorf("invalid MOCK_API_TOKEN_TTL_HOURS %q: %w", ttl, err)
		}
		cfg.MockAPI.TokenTTLHours = hours
	}

	return nil
}

func loadJSONConfig(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	return nil
}

func validateConfig(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", cfg.Server.Port)
	}

	switch cfg.Server.LogLevel {
	case "DEBUG", "INFO", "WARNING", "ERROR":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Server.LogLevel)
	}

	if cfg.MockAPI.Enabled {
		if cfg.MockAPI.SigningKey == "" {
			return fmt.Errorf("MOCK_API_SECRET is required when the mock API is enabled")
		}
		if cfg.MockAPI.TokenTTLHours <= 0 {
			return fmt.Errorf("MOCK_API_TOKEN_TTL_HOURS must be positive")
		}
	}

	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if config == nil {
		panic("Configuration not loaded")
	}
	return config
}

// ResetConfigForTest clears the loaded configuration so the next LoadConfig
// call reads the environment again
func ResetConfigForTest() {
	config = nil
	configOnce = sync.Once{}
}
