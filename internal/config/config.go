package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/exovance/site/internal/contact"
	"github.com/exovance/site/internal/logging"
	"github.com/exovance/site/internal/relay"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	StaticDir      string   `env:"STATIC_DIR"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`

	// EmailJS Configuration
	EmailJSServiceID  string        `env:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string        `env:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string        `env:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string        `env:"EMAILJS_PRIVATE_KEY"`
	EmailJSBaseURL    string        `env:"EMAILJS_BASE_URL" envDefault:"https://api.emailjs.com"`
	RelayTimeout      time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
	RelayDryRun       bool          `env:"RELAY_DRY_RUN" envDefault:"false"`

	// Contact Form Configuration
	FieldName         string        `env:"CONTACT_FIELD_NAME" envDefault:"from_name"`
	FieldEmail        string        `env:"CONTACT_FIELD_EMAIL" envDefault:"reply_to"`
	FieldMessage      string        `env:"CONTACT_FIELD_MESSAGE" envDefault:"message"`
	FieldHoneypot     string        `env:"CONTACT_FIELD_HONEYPOT" envDefault:"website"`
	FormTTL           time.Duration `env:"FORM_TTL" envDefault:"30m"`
	FormSweepInterval time.Duration `env:"FORM_SWEEP_INTERVAL" envDefault:"10m"`
	MaxForms          int           `env:"MAX_FORMS" envDefault:"10000"`
	ContactRateRPS    float64       `env:"CONTACT_RATE_RPS" envDefault:"1"`
	ContactRateBurst  int           `env:"CONTACT_RATE_BURST" envDefault:"5"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// godotenv.Load never overrides variables that are already set, so the
	// environment-specific file wins over the shared one.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if _, err := os.Stat(loc); err == nil {
			if err := godotenv.Load(loc); err != nil {
				return nil, fmt.Errorf("error loading env file %s: %w", loc, err)
			}
		}
	}

	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)
	cfg.TrustedProxies = trimAll(cfg.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if !c.RelayDryRun {
		if err := c.Credentials().Validate(); err != nil {
			return fmt.Errorf("%w (set EMAILJS_* or RELAY_DRY_RUN=true)", err)
		}
	}
	if err := c.Mapping().Validate(); err != nil {
		return err
	}
	if err := c.LogConfig().Validate(); err != nil {
		return err
	}
	if c.FormTTL <= 0 || c.FormSweepInterval <= 0 {
		return errors.New("FORM_TTL and FORM_SWEEP_INTERVAL must be positive")
	}
	if c.ContactRateRPS <= 0 || c.ContactRateBurst <= 0 {
		return errors.New("CONTACT_RATE_RPS and CONTACT_RATE_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Credentials returns the relay credentials.
func (c *Config) Credentials() relay.Credentials {
	return relay.Credentials{
		ServiceID:  c.EmailJSServiceID,
		TemplateID: c.EmailJSTemplateID,
		PublicKey:  c.EmailJSPublicKey,
		PrivateKey: c.EmailJSPrivateKey,
	}
}

// Mapping returns the contact field mapping.
func (c *Config) Mapping() contact.FieldMapping {
	return contact.FieldMapping{
		Name:     c.FieldName,
		Email:    c.FieldEmail,
		Message:  c.FieldMessage,
		Honeypot: c.FieldHoneypot,
	}
}

// LogConfig returns the logger settings.
func (c *Config) LogConfig() *logging.Config {
	return &logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		File:       c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
	}
}

// Masked returns a copy safe to print.
func (c *Config) Masked() Config {
	out := *c
	out.EmailJSPrivateKey = mask(c.EmailJSPrivateKey)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
