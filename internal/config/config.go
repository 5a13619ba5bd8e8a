package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

const devJWTSecret = "bizmodel-local-signing-key"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"` // public URL of the web client, used in emails and reports
	HTTP    HTTP   `mapstructure:"http"`
	DB      DB     `mapstructure:"database"`
	LLM     LLM    `mapstructure:"llm"`
	Redis   Redis  `mapstructure:"redis"`
	AMQP    AMQP   `mapstructure:"amqp"`
	SMTP    SMTP   `mapstructure:"smtp"`
	Auth    Auth   `mapstructure:"auth"`
	CORS    CORS   `mapstructure:"cors"`
}

type HTTP struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL          string `mapstructure:"-"` // loaded from DATABASE_URL
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// LLM selects and configures the chat-completion provider.
type LLM struct {
	Provider string        `mapstructure:"provider"` // anthropic, openai, cli or disabled
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"-"`
	BaseURL  string        `mapstructure:"base_url"`
	CLIPath  string        `mapstructure:"cli_path"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Redis struct {
	URL string        `mapstructure:"url"` // empty disables the analysis cache
	TTL time.Duration `mapstructure:"ttl"`
}

type AMQP struct {
	URL      string `mapstructure:"url"` // empty disables event publishing
	Exchange string `mapstructure:"exchange"`
}

type SMTP struct {
	Host     string `mapstructure:"host"` // empty switches to the log mailer
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"-"`
	From     string `mapstructure:"from"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"-"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("base_url", "APP_BASE_URL")
	_ = v.BindEnv("http.port", "PORT")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm_api_key", "LLM_API_KEY")
	_ = v.BindEnv("llm.base_url", "LLM_BASE_URL")
	_ = v.BindEnv("redis.url", "REDIS_URL")
	_ = v.BindEnv("amqp.url", "AMQP_URL")
	_ = v.BindEnv("smtp_password", "SMTP_PASSWORD")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Secrets never come from the config file.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL: %w", ErrMissingEnvironmentVariables)
	}

	cfg.LLM.APIKey = v.GetString("llm_api_key")
	cfg.SMTP.Password = v.GetString("smtp_password")

	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET: %w", ErrMissingEnvironmentVariables)
		}
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("base_url", "http://localhost:5173")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.cli_path", "claude")
	v.SetDefault("llm.timeout", "45s")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", "24h")

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "bizmodel.events")

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.from", "BizModelAI <noreply@bizmodelai.com>")

	v.SetDefault("auth.token_ttl", "72h")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}
