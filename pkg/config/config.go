package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "OVISS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Auth    AuthConfig
	Booking BookingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OVISS_APP_ENV" default:"dev"`
	Port         string `envconfig:"OVISS_APP_PORT" default:"8673"`
	LogLevel     string `envconfig:"OVISS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OVISS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the on-device SQLite file holding session state.
type DBConfig struct {
	Path        string `envconfig:"OVISS_DB_PATH" default:"oviss.db"`
	AutoMigrate bool   `envconfig:"OVISS_DB_AUTO_MIGRATE" default:"true"`
}

// AuthConfig tunes the mock verification flow. The code is fixed because no
// real delivery channel exists in this deployment.
type AuthConfig struct {
	VerificationCode string        `envconfig:"OVISS_AUTH_VERIFICATION_CODE" default:"123456"`
	ResendCooldown   time.Duration `envconfig:"OVISS_AUTH_RESEND_COOLDOWN" default:"30s"`
}

type BookingConfig struct {
	StartingCredit string `envconfig:"OVISS_BOOKING_STARTING_CREDIT" default:"100.00"`
}
