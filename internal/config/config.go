package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"ModaVista/pkg/kit"
)

const Prefix = "STOREFRONT"

const devSessionSecret = "modavista-development-secret-change-me"

type App struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Session
	SessionSecret  string        `envconfig:"SESSION_SECRET"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"24h" validate:"gt=0"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`
	SessionBackend string        `envconfig:"SESSION_BACKEND" default:"memory" validate:"oneof=memory redis"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"10" validate:"min=4,max=31"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Events
	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"storefront"`

	// Observability
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`
	OTELEndpoint   string `envconfig:"OTEL_ENDPOINT"`
}

func (a App) IsDevelopment() bool { return a.Env == "development" }

var ErrWeakSessionSecret = errors.New("SESSION_SECRET must be at least 32 chars")

// Load reads an optional .env file, then the STOREFRONT_* environment.
// Outside development a 32+ char session secret is required.
func Load() (App, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv is Load without the .env file.
func FromEnv() (App, error) {
	var c App
	if err := envconfig.Process(Prefix, &c); err != nil {
		return App{}, fmt.Errorf("read env: %w", err)
	}

	if c.SessionSecret == "" && c.IsDevelopment() {
		c.SessionSecret = devSessionSecret
	}
	if len(c.SessionSecret) < 32 {
		return App{}, ErrWeakSessionSecret
	}

	if err := kit.Validate(c); err != nil {
		return App{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
