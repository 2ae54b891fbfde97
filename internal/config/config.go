package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the site API.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	// EmailJS dispatch provider credentials. All four identifiers are
	// required at startup so a missing value fails fast instead of
	// surfacing as a provider rejection on the first inquiry.
	EmailJSBaseURL             string
	EmailJSServiceID           string
	EmailJSTemplateID          string
	EmailJSAutoReplyTemplateID string
	EmailJSPublicKey           string

	// Fixed contact identity of the business.
	BusinessInbox    string
	SecondaryInbox   string
	BusinessName     string
	ContactPhone     string
	WhatsAppNumber   string
	WhatsAppGreeting string

	// Optional idempotency layer. When RedisURL is empty the layer is
	// disabled and a resubmission after partial failure re-sends both
	// messages.
	RedisURL       string
	IdempotencyTTL time.Duration

	// Optional NATS broker for submission outcome events.
	NATSURL     string
	NATSSubject string

	DispatchTimeout time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GROWORA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GROWORA Site API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("emailjs.base_url", "https://api.emailjs.com")
	v.SetDefault("business.inbox", "info@groworaindia.com")
	v.SetDefault("business.secondary_inbox", "dhairya@groworaindia.com")
	v.SetDefault("business.name", "GROWORA Team")
	v.SetDefault("contact.phone", "+919967514905")
	v.SetDefault("whatsapp.number", "919967514905")
	v.SetDefault("whatsapp.greeting", "Hello, I'm interested in discussing agricultural commodity imports.")
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("nats.subject", "growora.inquiries")
	v.SetDefault("dispatch.timeout_ms", 15000)
	v.SetDefault("rate_limit.max", 5)
	v.SetDefault("rate_limit.window", "1m")

	ttl, err := time.ParseDuration(v.GetString("idempotency.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid idempotency ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("rate_limit.window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	timeoutMs := v.GetInt("dispatch.timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 15000
	}

	cfg := Config{
		AppName:                    v.GetString("app.name"),
		AppEnv:                     v.GetString("app.env"),
		AppPort:                    v.GetString("app.port"),
		EmailJSBaseURL:             v.GetString("emailjs.base_url"),
		EmailJSServiceID:           v.GetString("emailjs.service_id"),
		EmailJSTemplateID:          v.GetString("emailjs.template_id"),
		EmailJSAutoReplyTemplateID: v.GetString("emailjs.autoreply_template_id"),
		EmailJSPublicKey:           v.GetString("emailjs.public_key"),
		BusinessInbox:              v.GetString("business.inbox"),
		SecondaryInbox:             v.GetString("business.secondary_inbox"),
		BusinessName:               v.GetString("business.name"),
		ContactPhone:               v.GetString("contact.phone"),
		WhatsAppNumber:             v.GetString("whatsapp.number"),
		WhatsAppGreeting:           v.GetString("whatsapp.greeting"),
		RedisURL:                   v.GetString("redis.url"),
		IdempotencyTTL:             ttl,
		NATSURL:                    v.GetString("nats.url"),
		NATSSubject:                v.GetString("nats.subject"),
		DispatchTimeout:            time.Duration(timeoutMs) * time.Millisecond,
		RateLimitMax:               v.GetInt("rate_limit.max"),
		RateLimitWindow:            window,
	}

	if cfg.AppEnv != "development" {
		if err := cfg.validateDispatchCredentials(); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// DispatchConfigured reports whether the EmailJS credentials are complete.
func (c Config) DispatchConfigured() bool {
	return c.validateDispatchCredentials() == nil
}

func (c Config) validateDispatchCredentials() error {
	missing := make([]string, 0, 4)
	if c.EmailJSServiceID == "" {
		missing = append(missing, "GROWORA_EMAILJS_SERVICE_ID")
	}
	if c.EmailJSTemplateID == "" {
		missing = append(missing, "GROWORA_EMAILJS_TEMPLATE_ID")
	}
	if c.EmailJSAutoReplyTemplateID == "" {
		missing = append(missing, "GROWORA_EMAILJS_AUTOREPLY_TEMPLATE_ID")
	}
	if c.EmailJSPublicKey == "" {
		missing = append(missing, "GROWORA_EMAILJS_PUBLIC_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("emailjs configuration incomplete, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
