package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

const (
	DefaultWebhookTimeout      = 30 * time.Second
	DefaultWebhookProbeTimeout = 10 * time.Second
	defaultRequestTimeout      = 60 * time.Second
	// Room left after a full webhook call to classify the failure and write the reply.
	webhookHeadroom = 5 * time.Second
)

// Webhook holds the upstream meal-generation webhook settings.
type Webhook struct {
	URL          string        `mapstructure:"url"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeTimeout time.Duration `mapstructure:"probeTimeout"`
}

// Config is the full application configuration. It is loaded once at startup
// and passed by value; nothing reads viper at request time.
type Config struct {
	Mode           string `mapstructure:"mode"` // development or production
	Dotenv         string `mapstructure:"dotenv"`
	DeploymentType string `mapstructure:"deploymentType"` // Free-form, reported by /api/health
	Handlers       struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Webhook Webhook `mapstructure:"webhook"`
}

// IsProduction reports whether diagnostic detail must be withheld from clients.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Mode, ModeProduction)
}

// Environment is the mode name reported by the health endpoint.
func (c Config) Environment() string {
	if c.Mode == "" {
		return ModeDevelopment
	}
	return c.Mode
}

// RequestTimeout is the deadline the router puts on every handler. It never
// drops below a full webhook call plus headroom, otherwise a slow upstream
// would be cut off by the router instead of by the relay's own timeout.
func (c Config) RequestTimeout() time.Duration {
	timeout := c.Server.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	webhook := c.Webhook.Timeout
	if webhook <= 0 {
		webhook = DefaultWebhookTimeout
	}
	if floor := webhook + webhookHeadroom; timeout < floor {
		timeout = floor
	}
	return timeout
}

// Missing lists the environment variables that still need a value before the
// webhook can be called.
func (w Webhook) Missing() []string {
	var missing []string
	if strings.TrimSpace(w.URL) == "" {
		missing = append(missing, "DINNER_PLANNER_WEBHOOK_URL")
	}
	if w.Username == "" {
		missing = append(missing, "WEBHOOK_USERNAME")
	}
	if w.Password == "" {
		missing = append(missing, "WEBHOOK_PASSWORD")
	}
	return missing
}

// Configured reports whether URL and both credentials are set.
func (w Webhook) Configured() bool {
	return len(w.Missing()) == 0
}

// envBindings maps config keys to the environment variables that may set them.
// When several names are listed the first one that is set wins.
var envBindings = map[string][]string{
	"mode":                     {"APP_ENV"},
	"deploymentType":           {"DEPLOYMENT_TYPE"},
	"server.HTTPPort":          {"PORT"},
	"handlers.prometheus.port": {"METRICS_PORT"},
	"webhook.url":              {"DINNER_PLANNER_WEBHOOK_URL", "WEBHOOK_URL"},
	"webhook.username":         {"WEBHOOK_USERNAME"},
	"webhook.password":         {"WEBHOOK_PASSWORD"},
	"webhook.timeout":          {"WEBHOOK_TIMEOUT"},
	"webhook.probeTimeout":     {"WEBHOOK_PROBE_TIMEOUT"},
}

// InitConfig reads config.yml from disk (or the embedded copy), then layers
// environment variables on top.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// server.HTTPPort can be set as SERVER_HTTPPORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Legacy variable names used by existing deployments
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Zero or negative durations fall back to the defaults
	if config.Webhook.Timeout <= 0 {
		config.Webhook.Timeout = DefaultWebhookTimeout
	}
	if config.Webhook.ProbeTimeout <= 0 {
		config.Webhook.ProbeTimeout = DefaultWebhookProbeTimeout
	}
	return config, nil
}
