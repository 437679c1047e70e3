package env

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	Port                string        `env:"PORT" default:"8080"`
	BundlePath          string        `env:"SSR_BUNDLE" default:"dist/vue-ssr-server-bundle.json"`
	TemplatePath        string        `env:"SSR_TEMPLATE" default:"src/index.template.html"`
	PublicDir           string        `env:"SSR_PUBLIC_DIR" default:"public"`
	DistDir             string        `env:"SSR_DIST_DIR" default:"dist"`
	Runtime             string        `env:"SSR_RUNTIME" default:"node"`
	RenderTimeout       time.Duration `env:"SSR_RENDER_TIMEOUT" default:"0s"`
	DistinguishNotFound bool          `env:"SSR_DISTINGUISH_NOT_FOUND" default:"false"`
	Dev                 bool          `env:"SSR_DEV" default:"false"`
	MetricsAddr         string        `env:"METRICS_ADDR"`
	LogLevel            string        `env:"LOG_LEVEL" default:"info"`
	LogFormat           string        `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}

	required := map[string]string{
		"SSR_BUNDLE":   c.BundlePath,
		"SSR_TEMPLATE": c.TemplatePath,
		"SSR_RUNTIME":  c.Runtime,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if c.RenderTimeout < 0 {
		return fmt.Errorf("SSR_RENDER_TIMEOUT cannot be negative")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
