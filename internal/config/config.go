// Package config loads coursechat settings from defaults, an optional
// config.yaml, .env files and COURSECHAT_ environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	dbconfig "coursechat/pkg/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "COURSECHAT"

// Message log backends.
const (
	StorageSQLite = "sqlite"
	StorageBadger = "badger"
)

type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Database   dbconfig.Config  `mapstructure:"database"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Storage    StorageConfig    `mapstructure:"storage"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Transcript TranscriptConfig `mapstructure:"transcript"`
	Log        LogConfig        `mapstructure:"log"`
}

type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

type WebSocketConfig struct {
	PingInterval time.Duration `mapstructure:"ping_interval"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BufferSize   int           `mapstructure:"buffer_size"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type ChatConfig struct {
	RateLimit        int           `mapstructure:"rate_limit"`
	RateWindow       time.Duration `mapstructure:"rate_window"`
	FanoutQueueSize  int           `mapstructure:"fanout_queue_size"`
	FanoutJobTimeout time.Duration `mapstructure:"fanout_job_timeout"`
}

type StorageConfig struct {
	Messages  string `mapstructure:"messages"`
	BadgerDir string `mapstructure:"badger_dir"`
}

// NATSConfig enables event publishing when URL is set.
type NATSConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

// TranscriptConfig enables transcript generation when Endpoint is set.
type TranscriptConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in . and ./config and may be absent.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	db := dbconfig.DefaultConfig()

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.path", db.DatabasePath)
	v.SetDefault("database.max_connections", db.MaxConnections)
	v.SetDefault("database.conn_max_lifetime", db.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", db.ConnMaxIdleTime)
	v.SetDefault("database.timeout", db.WriteTimeout)

	v.SetDefault("websocket.ping_interval", 30*time.Second)
	v.SetDefault("websocket.read_timeout", 60*time.Second)
	v.SetDefault("websocket.write_timeout", 10*time.Second)
	v.SetDefault("websocket.buffer_size", 100)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("chat.rate_limit", 100)
	v.SetDefault("chat.rate_window", time.Minute)
	v.SetDefault("chat.fanout_queue_size", 256)
	v.SetDefault("chat.fanout_job_timeout", 30*time.Second)

	v.SetDefault("storage.messages", StorageSQLite)
	v.SetDefault("storage.badger_dir", "./data/messages")

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.stream", "COURSECHAT")

	v.SetDefault("transcript.endpoint", "")
	v.SetDefault("transcript.timeout", 2*time.Minute)

	v.SetDefault("log.level", "INFO")
}

func (c *Config) Validate() error {
	if c.HTTP.Host == "" {
		return errors.New("HTTP host cannot be empty")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.New("HTTP port must be between 1 and 65535")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("HTTP timeouts must be positive")
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if c.WebSocket.PingInterval <= 0 {
		return errors.New("WebSocket ping interval must be positive")
	}
	if c.WebSocket.ReadTimeout <= c.WebSocket.PingInterval {
		return errors.New("WebSocket read timeout must exceed the ping interval")
	}
	if c.WebSocket.WriteTimeout <= 0 {
		return errors.New("WebSocket write timeout must be positive")
	}
	if c.WebSocket.BufferSize <= 0 {
		return errors.New("WebSocket buffer size must be positive")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth token ttl must be positive")
	}

	if c.Chat.RateLimit < 0 {
		return errors.New("chat rate limit cannot be negative")
	}
	if c.Chat.RateWindow <= 0 {
		return errors.New("chat rate window must be positive")
	}
	if c.Chat.FanoutQueueSize <= 0 || c.Chat.FanoutJobTimeout <= 0 {
		return errors.New("chat fan-out queue size and job timeout must be positive")
	}

	switch c.Storage.Messages {
	case StorageSQLite:
	case StorageBadger:
		// An empty directory runs badger in memory.
	default:
		return fmt.Errorf("unknown message storage %q", c.Storage.Messages)
	}

	if c.NATS.URL != "" && c.NATS.Stream == "" {
		return errors.New("nats.stream is required when nats.url is set")
	}
	if c.Transcript.Endpoint != "" && c.Transcript.Timeout <= 0 {
		return errors.New("transcript timeout must be positive")
	}
	return nil
}
