package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	RateLimit     RateLimitConfig
	Notifier      NotifierConfig
	Insight       InsightConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	// BusinessPhone is surfaced in error responses as a manual fallback channel
	BusinessPhone string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// RateLimitConfig drives the fixed-window limiter on the quote endpoint.
type RateLimitConfig struct {
	Window        time.Duration
	MaxRequests   int
	SweepInterval time.Duration
}

// NotifierConfig holds credentials for the two outbound channels: the
// transactional email API and the form-webhook relay. Either may be absent;
// sends become no-ops.
type NotifierConfig struct {
	EmailAPIKey       string
	EmailBaseURL      string
	EmailFrom         string
	NotificationEmail string
	WebhookAccessKey  string
	WebhookURL        string
}

// InsightConfig holds the generative backend settings. An empty APIKey
// disables the backend entirely; insight generation then always uses the
// deterministic fallback.
type InsightConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	Temperature float32
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://alexanderscleaning.com")
	v.SetDefault("ALLOWED_ORIGINS", "https://alexanderscleaning.com,https://www.alexanderscleaning.com")
	v.SetDefault("BUSINESS_PHONE", "(570) 555-1234")
	v.SetDefault("RATE_LIMIT_WINDOW_MS", 60000)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 5)
	v.SetDefault("RATE_LIMIT_SWEEP_MINUTES", 10)
	v.SetDefault("EMAIL_BASE_URL", "https://api.resend.com")
	v.SetDefault("EMAIL_FROM", "Alexander's Cleaning <quotes@resend.dev>")
	v.SetDefault("WEBHOOK_URL", "https://api.web3forms.com/submit")
	v.SetDefault("INSIGHT_MODEL", "gemini-1.5-flash")
	v.SetDefault("INSIGHT_BASE_URL", "")
	v.SetDefault("INSIGHT_TIMEOUT_SECONDS", 8)
	v.SetDefault("INSIGHT_CACHE_TTL_MINUTES", 60)
	v.SetDefault("INSIGHT_TEMPERATURE", 0.8)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "quotes-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "alexanderscleaning")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "quotes-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	// Parse allowed origins (comma-separated prefixes)
	allowedOrigins := []string{}
	originsStr := v.GetString("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: allowedOrigins,
			BusinessPhone:  v.GetString("BUSINESS_PHONE"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: 20,
			MinConns: 2,
		},
		RateLimit: RateLimitConfig{
			Window:        time.Duration(v.GetInt("RATE_LIMIT_WINDOW_MS")) * time.Millisecond,
			MaxRequests:   v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
			SweepInterval: time.Duration(v.GetInt("RATE_LIMIT_SWEEP_MINUTES")) * time.Minute,
		},
		Notifier: NotifierConfig{
			EmailAPIKey:       v.GetString("EMAIL_API_KEY"),
			EmailBaseURL:      v.GetString("EMAIL_BASE_URL"),
			EmailFrom:         v.GetString("EMAIL_FROM"),
			NotificationEmail: v.GetString("NOTIFICATION_EMAIL"),
			WebhookAccessKey:  v.GetString("WEBHOOK_ACCESS_KEY"),
			WebhookURL:        v.GetString("WEBHOOK_URL"),
		},
		Insight: InsightConfig{
			APIKey:      v.GetString("INSIGHT_API_KEY"),
			Model:       v.GetString("INSIGHT_MODEL"),
			BaseURL:     v.GetString("INSIGHT_BASE_URL"),
			Timeout:     time.Duration(v.GetInt("INSIGHT_TIMEOUT_SECONDS")) * time.Second,
			CacheTTL:    time.Duration(v.GetInt("INSIGHT_CACHE_TTL_MINUTES")) * time.Minute,
			Temperature: float32(v.GetFloat64("INSIGHT_TEMPERATURE")),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set. Database,
// notifier, and insight credentials are deliberately NOT required: their
// absence degrades the corresponding feature instead of failing startup.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS is required")
	}

	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive")
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive")
	}

	if c.Insight.Timeout <= 0 {
		return fmt.Errorf("INSIGHT_TIMEOUT_SECONDS must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
