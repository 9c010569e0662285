package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address             string   `yaml:"address"`
	SwaggerDir          string   `yaml:"swagger_dir"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret          string `yaml:"jwt_secret"`
	SessionTTLMinutes  int    `yaml:"session_ttl_minutes"`
	RecoveryTTLMinutes int    `yaml:"recovery_ttl_minutes"`
	ResetURL           string `yaml:"reset_url"`
}

func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

func (a AuthConfig) RecoveryTTL() time.Duration {
	return time.Duration(a.RecoveryTTLMinutes) * time.Minute
}

type CacheConfig struct {
	DestinationsTTLSeconds int `yaml:"destinations_ttl_seconds"`
	StatsTTLSeconds        int `yaml:"stats_ttl_seconds"`
}

func (c CacheConfig) DestinationsTTL() time.Duration {
	return time.Duration(c.DestinationsTTLSeconds) * time.Second
}

func (c CacheConfig) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLSeconds) * time.Second
}

type WorkerConfig struct {
	CompletionSweepMinutes int `yaml:"completion_sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document, then applies env overrides and defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := os.Getenv("SAFARPK_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SAFARPK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	cfg.applyDefaults()
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ReadTimeoutSeconds == 0 {
		c.HTTP.ReadTimeoutSeconds = 15
	}
	if c.HTTP.WriteTimeoutSeconds == 0 {
		c.HTTP.WriteTimeoutSeconds = 30
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "safarpk.bookings"
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "safarpk.notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "safarpk-worker"
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = 24 * 60
	}
	if c.Auth.RecoveryTTLMinutes == 0 {
		c.Auth.RecoveryTTLMinutes = 60
	}
	if c.Cache.DestinationsTTLSeconds == 0 {
		c.Cache.DestinationsTTLSeconds = 300
	}
	if c.Cache.StatsTTLSeconds == 0 {
		c.Cache.StatsTTLSeconds = 30
	}
	if c.Worker.CompletionSweepMinutes == 0 {
		c.Worker.CompletionSweepMinutes = 15
	}
}
