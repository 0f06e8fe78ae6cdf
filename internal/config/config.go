package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. CURTAINPOS_BACKEND_URL.
const EnvPrefix = "CURTAINPOS"

// Config is the runtime configuration shared by the CLI and the server.
type Config struct {
	BackendURL      string        `envconfig:"BACKEND_URL" required:"true"`
	BackendTimeout  time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
	PrintServiceURL string        `envconfig:"PRINT_SERVICE_URL"`

	ServerPort     string        `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Currency    string `envconfig:"CURRENCY" default:"LKR"`
	PaymentType string `envconfig:"PAYMENT_TYPE" default:"cash"`

	// DiscountMode is how stored bill discounts are read for profit:
	// "percent" or "absolute".
	DiscountMode string `envconfig:"DISCOUNT_MODE" default:"percent"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s_BACKEND_URL %q", EnvPrefix, c.BackendURL)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	c.PrintServiceURL = strings.TrimRight(c.PrintServiceURL, "/")
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("%s_BACKEND_TIMEOUT must be positive", EnvPrefix)
	}
	switch c.DiscountMode {
	case "percent", "absolute":
	default:
		return fmt.Errorf("%s_DISCOUNT_MODE must be percent or absolute, got %q", EnvPrefix, c.DiscountMode)
	}
	return nil
}

// PrintingEnabled reports whether a print service is configured.
func (c *Config) PrintingEnabled() bool {
	return c.PrintServiceURL != ""
}
