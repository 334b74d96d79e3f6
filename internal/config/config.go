package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPPort       = 8080
	defaultSSHPort        = 23234
	defaultSSHHostKeyPath = ".ssh/board_ed25519"
	defaultRefreshSecs    = 10
	defaultOTLPEndpoint   = "localhost:4317"
)

type Config struct {
	LogLevel string `yaml:"log_level"`

	HTTPPort       int    `yaml:"http_port"`
	SSHHost        string `yaml:"ssh_host"`
	SSHPort        int    `yaml:"ssh_port"`
	SSHHostKeyPath string `yaml:"ssh_host_key_path"`

	// RedisURL enables the major-detail cache when set.
	RedisURL         string `yaml:"redis_url"`
	TelegramBotToken string `yaml:"telegram_bot_token"`
	// APIKey guards POST /api/refresh; empty leaves it open.
	APIKey string `yaml:"api_key"`

	// RefreshSecs is how often interactive views re-read the facade.
	RefreshSecs int `yaml:"refresh_secs"`

	TracingEnabled bool   `yaml:"tracing_enabled"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
}

// Load builds the configuration from defaults, then the optional YAML file
// named by BOARD_CONFIG_FILE, then environment variables.
func Load() *Config {
	cfg := &Config{
		LogLevel:       "info",
		HTTPPort:       defaultHTTPPort,
		SSHHost:        "0.0.0.0",
		SSHPort:        defaultSSHPort,
		SSHHostKeyPath: defaultSSHHostKeyPath,
		RefreshSecs:    defaultRefreshSecs,
		TracingEnabled: true,
		OTLPEndpoint:   defaultOTLPEndpoint,
	}

	if path := strings.TrimSpace(os.Getenv("BOARD_CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			log.Printf("Warning: ignoring config file: %v", err)
		}
	}

	applyEnv(cfg)

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot will be disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, major details will not be cached")
	}

	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	overlay := *c
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	overlay.normalize(c)
	*c = overlay
	return nil
}

// normalize puts back any field the overlay set to an invalid value.
func (c *Config) normalize(defaults *Config) {
	if c.HTTPPort <= 0 {
		c.HTTPPort = defaults.HTTPPort
	}
	if c.SSHPort <= 0 {
		c.SSHPort = defaults.SSHPort
	}
	if c.RefreshSecs <= 0 {
		c.RefreshSecs = defaults.RefreshSecs
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaults.LogLevel
	}
	if strings.TrimSpace(c.OTLPEndpoint) == "" {
		c.OTLPEndpoint = defaults.OTLPEndpoint
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBotToken = v
	}
	if v := strings.TrimSpace(os.Getenv("API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SSH_HOST")); v != "" {
		cfg.SSHHost = v
	}
	if v := strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH")); v != "" {
		cfg.SSHHostKeyPath = v
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); v != "" {
		cfg.OTLPEndpoint = v
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("REFRESH_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshSecs = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("TRACING_ENABLED")); v != "" {
		cfg.TracingEnabled = !strings.EqualFold(v, "false")
	}
}

// HTTPAddr is the gin listen address.
func (c *Config) HTTPAddr() string {
	return ":" + strconv.Itoa(c.HTTPPort)
}
