package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App       AppConfig
	Dataset   DatasetConfig
	Insights  InsightsConfig
	Narrative NarrativeConfig
	Metrics   MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies cross-field checks envconfig tags cannot express.
// All failures are reported together so operators fix the env once.
func (c *Config) validate() error {
	var errs error
	if c.Dataset.MaxUploadBytes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvMaxUploadBytes))
	}
	if c.Insights.DefaultTopN <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvDefaultTopN))
	}
	if c.Narrative.Timeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvNarrativeTimeout))
	}
	if c.Narrative.APIKey != "" && c.Narrative.BaseURL == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s required when an API key is set", EnvNarrativeBaseURL))
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"ECOMLYTICS_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOMLYTICS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ECOMLYTICS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOMLYTICS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DatasetConfig struct {
	MaxUploadBytes int64 `envconfig:"ECOMLYTICS_DATASET_MAX_UPLOAD_BYTES" default:"26214400"`
}

type InsightsConfig struct {
	DefaultTopN int `envconfig:"ECOMLYTICS_INSIGHTS_DEFAULT_TOP_N" default:"10"`
}

type MetricsConfig struct {
	Namespace string `envconfig:"ECOMLYTICS_METRICS_NAMESPACE" default:"ecomlytics"`
}

type NarrativeConfig struct {
	APIKey      string        `envconfig:"ECOMLYTICS_NARRATIVE_API_KEY"`
	BaseURL     string        `envconfig:"ECOMLYTICS_NARRATIVE_BASE_URL" default:"https://api.openai.com/v1/responses"`
	Model       string        `envconfig:"ECOMLYTICS_NARRATIVE_MODEL" default:"gpt-4.1-mini"`
	Temperature float64       `envconfig:"ECOMLYTICS_NARRATIVE_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"ECOMLYTICS_NARRATIVE_TIMEOUT" default:"20s"`
}

// Enabled reports whether the optional polish call is configured at all.
func (n NarrativeConfig) Enabled() bool {
	return n.APIKey != ""
}
