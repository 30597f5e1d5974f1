package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite"
	Driver     string `mapstructure:"driver"`
	URL        string `mapstructure:"url"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Database   string `mapstructure:"database"`
	SSLMode    string `mapstructure:"ssl_mode"`
	MaxConns   int32  `mapstructure:"max_conns"`
	MinConns   int32  `mapstructure:"min_conns"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DSN returns the postgres connection string. An explicit URL wins over
// the individual fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"`
}

// AccessTokenTTL returns the default access token lifetime
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

type LLMConfig struct {
	DefaultProvider string        `mapstructure:"default_provider"`
	Models          []string      `mapstructure:"models"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Temperature     float32       `mapstructure:"temperature"`
	OpenAI          OpenAIConfig  `mapstructure:"openai"`
	Gemini          GeminiConfig  `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type SecurityConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables rotating file output in addition to stderr
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings every process needs before serving
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (JWT_SECRET_KEY)")
	}
	if c.Auth.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("auth.access_token_expire_minutes must be positive, got %d", c.Auth.AccessTokenExpireMinutes)
	}
	if len(c.LLM.Models) == 0 {
		return errors.New("llm.models must list at least one model (OPENAI_MODELS)")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.middleware_timeout", "60s")

	// Database
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "gateway")
	v.SetDefault("database.database", "gateway")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.sqlite_path", "gateway.db")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Auth
	v.SetDefault("auth.access_token_expire_minutes", 30)

	// LLM
	v.SetDefault("llm.default_provider", "openai")
	v.SetDefault("llm.models", []string{"text-davinci-003", "text-curie-001"})
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.temperature", 0.5)

	// Security
	v.SetDefault("security.rate_limit.requests_per_minute", 60)
	v.SetDefault("security.rate_limit.burst", 10)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_age", "168h")
	v.SetDefault("logging.rotation_time", "24h")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.password", "POSTGRES_PASSWORD")
	v.BindEnv("database.sqlite_path", "SQLITE_PATH")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Auth
	v.BindEnv("auth.jwt_secret", "JWT_SECRET_KEY")
	v.BindEnv("auth.access_token_expire_minutes", "ACCESS_TOKEN_EXPIRE_MINUTES")

	// LLM
	v.BindEnv("llm.default_provider", "LLM_PROVIDER")
	v.BindEnv("llm.models", "OPENAI_MODELS")
	v.BindEnv("llm.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
	v.BindEnv("logging.file", "LOG_FILE")
}
