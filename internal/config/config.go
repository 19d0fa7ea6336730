package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fxpulse/internal/score"
)

// Config is the pipeline configuration. It is loaded once in main and
// passed explicitly to constructors; packages never read it from
// globals. The CONFIG_YAML environment variable carries the YAML
// document; secrets stay in their own env vars.
type Config struct {
	Decay    DecayConfig    `yaml:"decay"`
	Search   SearchConfig   `yaml:"search"`
	Scorer   ScorerConfig   `yaml:"scorer"`
	Research ResearchConfig `yaml:"research"`
}

type DecayConfig struct {
	TauMinutes    float64 `yaml:"tau_minutes"`
	K             float64 `yaml:"k"`
	WeightCap     float64 `yaml:"weight_cap"`
	BucketMinutes int     `yaml:"bucket_minutes"`
	LookbackHours int     `yaml:"lookback_hours"`
}

type SearchConfig struct {
	Queries        []string `yaml:"queries"`
	MaxResults     int      `yaml:"max_results"`
	Hours          int      `yaml:"hours"`
	IncludeDomains []string `yaml:"include_domains"`
	ExcludeDomains []string `yaml:"exclude_domains"`
}

type ScorerConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Workers     int     `yaml:"workers"`
}

type ResearchConfig struct {
	Questions      int    `yaml:"questions"`
	MaxWorkers     int    `yaml:"max_workers"`
	Processor      string `yaml:"processor"`
	PollSeconds    int    `yaml:"poll_seconds"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Default() Config {
	return Config{
		Decay: DecayConfig{
			TauMinutes:    20,
			K:             1.8,
			WeightCap:     1.0,
			BucketMinutes: 60,
			LookbackHours: 168,
		},
		Search: SearchConfig{
			Queries:    []string{"USDJPY news", "EURUSD news"},
			MaxResults: 20,
			Hours:      24,
		},
		Scorer: ScorerConfig{
			Model:       "qwen/qwen3-32b-fp8",
			BaseURL:     "https://api.novita.ai/v3/openai",
			Temperature: 0.2,
			MaxTokens:   512,
			Workers:     4,
		},
		Research: ResearchConfig{
			Questions:      5,
			MaxWorkers:     5,
			Processor:      "base",
			PollSeconds:    10,
			TimeoutSeconds: 900,
		},
	}
}

// Load returns defaults overlaid with the CONFIG_YAML env document,
// if present.
func Load() (Config, error) {
	cfg := Default()

	raw := os.Getenv("CONFIG_YAML")
	if raw == "" {
		return cfg, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse CONFIG_YAML: %w", err)
	}
	return cfg, nil
}

// ScoreConfig converts the decay section into the aggregation core's
// explicit configuration record.
func (d DecayConfig) ScoreConfig() score.Config {
	return score.Config{
		TauMinutes: d.TauMinutes,
		K:          d.K,
		WeightCap:  d.WeightCap,
		BucketSize: time.Duration(d.BucketMinutes) * time.Minute,
		Lookback:   time.Duration(d.LookbackHours) * time.Hour,
	}
}
