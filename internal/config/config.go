package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rigfit/rigfit/internal/analysis"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type AnalysisConfig struct {
	ReductionPolicy string  `yaml:"reduction_policy"`
	ScoringPolicy   string  `yaml:"scoring_policy"`
	SelectionPolicy string  `yaml:"selection_policy"`
	DefaultAxis1    float64 `yaml:"default_axis1"`
	DefaultAxis2    float64 `yaml:"default_axis2"`
	DefaultBudget   float64 `yaml:"default_budget"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Policy converts the configured policy names into an analysis.Policy.
func (c *Config) Policy() analysis.Policy {
	return analysis.Policy{
		Reduction: analysis.ReductionPolicy(c.Analysis.ReductionPolicy),
		Scoring:   analysis.ScoringPolicy(c.Analysis.ScoringPolicy),
		Selection: analysis.SelectionPolicy(c.Analysis.SelectionPolicy),
	}
}

// DefaultPreference returns the preference applied when a request supplies
// no weights of its own.
func (c *Config) DefaultPreference() analysis.Preference {
	return analysis.Preference{
		Axis1:  c.Analysis.DefaultAxis1,
		Axis2:  c.Analysis.DefaultAxis2,
		Budget: c.Analysis.DefaultBudget,
	}
}

func Load(path string) (*Config, error) {
	def := analysis.DefaultPolicy()
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Analysis: AnalysisConfig{
			ReductionPolicy: string(def.Reduction),
			ScoringPolicy:   string(def.Scoring),
			SelectionPolicy: string(def.Selection),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Policy().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RIGFIT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("RIGFIT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("RIGFIT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("RIGFIT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RIGFIT_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("RIGFIT_REDUCTION_POLICY"); v != "" {
		cfg.Analysis.ReductionPolicy = v
	}
	if v := os.Getenv("RIGFIT_SCORING_POLICY"); v != "" {
		cfg.Analysis.ScoringPolicy = v
	}
	if v := os.Getenv("RIGFIT_SELECTION_POLICY"); v != "" {
		cfg.Analysis.SelectionPolicy = v
	}
	if v := os.Getenv("RIGFIT_DEFAULT_BUDGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.DefaultBudget = f
		}
	}
	if v := os.Getenv("RIGFIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
