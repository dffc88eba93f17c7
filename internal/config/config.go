package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the property service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	GRPCPort    string `mapstructure:"GRPC_PORT"`
	ClientURL   string `mapstructure:"CLIENT_URL"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `mapstructure:"TRUST_PROXY_HEADERS"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpiry time.Duration `mapstructure:"JWT_EXPIRY"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`
	MaxUploadMB    int64  `mapstructure:"MAX_UPLOAD_MB"`

	NATSURL string `mapstructure:"NATS_URL"`

	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	EnquiryRateLimit  int64         `mapstructure:"ENQUIRY_RATE_LIMIT"`
	EnquiryRateWindow time.Duration `mapstructure:"ENQUIRY_RATE_WINDOW"`

	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPUsername     string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom         string `mapstructure:"SMTP_FROM"`
	AdminNotifyEmail string `mapstructure:"ADMIN_NOTIFY_EMAIL"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogOutputFile string `mapstructure:"LOG_OUTPUT_FILE"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// MailEnabled reports whether enquiry notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.AdminNotifyEmail != ""
}

// MaxUploadBytes is the per-file upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "property-service")
	v.SetDefault("HTTP_PORT", "5000")
	v.SetDefault("GRPC_PORT", "50052")
	v.SetDefault("CLIENT_URL", "http://localhost:3001")
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "property_listings")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY", "168h")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "property-media")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_PUBLIC_URL", "")
	v.SetDefault("MAX_UPLOAD_MB", 50)
	v.SetDefault("NATS_URL", "")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENQUIRY_RATE_LIMIT", 5)
	v.SetDefault("ENQUIRY_RATE_WINDOW", "10m")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("ADMIN_NOTIFY_EMAIL", "")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9093")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT_FILE", "stdout")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads .env (if present), then config.env (if present), then the
// process environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET is required")
	case c.MongoURI == "":
		return errors.New("MONGO_URI is required")
	case c.MongoDatabase == "":
		return errors.New("MONGO_DATABASE is required")
	case c.HTTPPort == "":
		return errors.New("HTTP_PORT is required")
	case c.JWTExpiry <= 0:
		return errors.New("JWT_EXPIRY must be positive")
	case c.MaxUploadMB <= 0:
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}
