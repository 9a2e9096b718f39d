package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/utils"
)

// Config holds every runtime setting, decoded from the environment.
type Config struct {
	Port string `env:"PORT,default=8000"`

	DBType      string `env:"DB_TYPE,default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS,default=10"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=24h"`

	UploadDir     string `env:"UPLOAD_DIR,default=./upload"`
	UploadBackend string `env:"UPLOAD_BACKEND,default=disk"`

	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT,default=587"`
	EmailUser  string `env:"EMAIL_USER"`
	EmailPass  string `env:"EMAIL_PASS"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	RabbitMQURL string `env:"RABBITMQ_URL"`

	EarningsTimezone string `env:"EARNINGS_TIMEZONE,default=UTC"`
	SweepSchedule    string `env:"SWEEP_SCHEDULE,default=*/10 * * * *"`
	ReminderSchedule string `env:"REMINDER_SCHEDULE,default=* * * * *"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads .env when present and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("no .env file found, using process environment")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DBType = strings.ToLower(strings.TrimSpace(c.DBType))
	switch c.DBType {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	switch c.UploadBackend {
	case "disk":
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return errors.New("cloudinary upload backend needs CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_BACKEND %q", c.UploadBackend)
	}
	return nil
}

// Location is the timezone used to bucket appointment dates.
func (c *Config) Location() *time.Location {
	return utils.LoadLocation(c.EarningsTimezone)
}
