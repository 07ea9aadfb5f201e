package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingmrb/post-call-webhook/internal/hours"
	"github.com/kingmrb/post-call-webhook/internal/menu"
)

// Config is everything the server reads from the environment. All third-party
// credentials are optional: without Gemini the AI parser degrades, without
// DATABASE_URL orders stay in memory, without Toast keys submission is a noop.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	DatabaseURL string
	RedisAddr   string

	GeminiAPIKey string
	GeminiModel  string

	ToastAPIKey     string
	ToastLocationID string
	ToastAPIURL     string

	WebhookSecret string

	MainAgentID     string
	FallbackAgentID string

	TaxRate float64

	Catalog  *menu.Catalog
	Schedule hours.Schedule
}

// fileConfig is the optional YAML file carrying restaurant-specific data the
// code must not hardcode: the menu, the tax rate and the opening hours.
type fileConfig struct {
	TaxRate float64          `yaml:"tax_rate"`
	Menu    menu.CatalogFile `yaml:"menu"`
	Hours   hours.Schedule   `yaml:"hours"`
}

// Load reads the environment (plus .env outside production) and the optional
// config file named by CONFIG_PATH.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:            envOr("PORT", "8000"),
		AppEnv:          envOr("APP_ENV", "development"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		ToastAPIKey:     os.Getenv("TOAST_API_KEY"),
		ToastLocationID: os.Getenv("TOAST_LOCATION_ID"),
		ToastAPIURL:     envOr("TOAST_API_URL", "https://toast-api.example.com"),
		WebhookSecret:   os.Getenv("WEBHOOK_SECRET"),
		MainAgentID:     os.Getenv("VOICE_MAIN_AGENT_ID"),
		FallbackAgentID: os.Getenv("VOICE_FALLBACK_AGENT_ID"),
		TaxRate:         0.065,
		Catalog:         menu.DefaultCatalog(),
		Schedule:        hours.DefaultSchedule(),
	}

	if v := os.Getenv("TAX_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("config: bad TAX_RATE %q", v)
		}
		cfg.TaxRate = rate
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if file.TaxRate > 0 {
		c.TaxRate = file.TaxRate
	}
	if len(file.Menu.Items) > 0 {
		catalog, err := menu.NewCatalog(file.Menu.Items, file.Menu.Aliases, file.Menu.SpiceKeywords)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		c.Catalog = catalog
	}
	if len(file.Hours) > 0 {
		c.Schedule = file.Hours
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
