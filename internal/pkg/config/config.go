package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Fetcher  FetcherConfig  `yaml:"fetcher"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram"`
	Batch    BatchConfig    `yaml:"batch"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // optional extra log file
}

type FetcherConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	BaseURL   string        `yaml:"base_url"` // used to resolve bare paste ids
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	CORSOrigins       []string      `yaml:"cors_origins"`
}

type TelegramConfig struct {
	Token          string  `yaml:"token"`
	UpdateTimeout  int     `yaml:"update_timeout"` // long polling timeout, seconds
	AllowedUserIDs []int64 `yaml:"allowed_user_ids"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Default returns a config with the values every service can run with
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Fetcher: FetcherConfig{
			Timeout:   30 * time.Second,
			UserAgent: "pokepaste-parser/1.0 (https://github.com/Vodeneev/pokepaste)",
			BaseURL:   "https://pokepast.es",
		},
		Redis: RedisConfig{
			TTL: time.Hour,
		},
		Server: ServerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    30 * time.Second,
			CORSOrigins:       []string{"*"},
		},
		Telegram: TelegramConfig{
			UpdateTimeout: 60,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
	}
}

// Load reads the yaml file on top of Default and applies env overrides
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// Parse decodes yaml bytes on top of Default, applies env overrides and validates
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// LoadOrDefault loads the file when it exists, otherwise returns Default with env overrides.
// CLI tools use it so that a missing config file is not fatal.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return Load(configPath)
		}
	}
	config := Default()
	config.applyEnv()
	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("server.read_header_timeout must be positive")
	}
	if c.Fetcher.Timeout < 0 {
		return fmt.Errorf("fetcher.timeout must not be negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
