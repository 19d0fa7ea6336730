package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoad_DefaultsWithoutEnv(t *testing.T) {
	t.Setenv("CONFIG_YAML", "")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, 20.0, cfg.Decay.TauMinutes)
	assert.Equal(t, 1.8, cfg.Decay.K)
	assert.Equal(t, 168, cfg.Decay.LookbackHours)
	assert.Equal(t, 2, len(cfg.Search.Queries))
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_YAML", `
decay:
  tau_minutes: 60
  k: 1.0
  weight_cap: 10
search:
  queries:
    - "GBPUSD rate decision"
`)

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, 60.0, cfg.Decay.TauMinutes)
	assert.Equal(t, 1.0, cfg.Decay.K)
	assert.Equal(t, 10.0, cfg.Decay.WeightCap)
	assert.Equal(t, []string{"GBPUSD rate decision"}, cfg.Search.Queries)
	// untouched sections keep defaults
	assert.Equal(t, 5, cfg.Research.Questions)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("CONFIG_YAML", "decay: [not a map")

	_, err := Load()
	assert.NotEqual(t, nil, err)
}

func TestScoreConfig_Conversion(t *testing.T) {
	d := DecayConfig{TauMinutes: 30, K: 2, WeightCap: 5, BucketMinutes: 60, LookbackHours: 48}

	sc := d.ScoreConfig()

	assert.Equal(t, 30.0, sc.TauMinutes)
	assert.Equal(t, time.Hour, sc.BucketSize)
	assert.Equal(t, 48*time.Hour, sc.Lookback)
}
