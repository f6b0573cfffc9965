package config_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitlog/core/config"
)

type cachedConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"default"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type overlayConfig struct {
	Enabled bool   `env:"ENABLED"`
	Level   string `env:"LEVEL"`
	Other   string
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "first")

	var cfg1 cachedConfig
	require.NoError(t, config.Load(&cfg1))
	assert.Equal(t, "first", cfg1.Name)
	assert.Equal(t, 5*time.Second, cfg1.Timeout)

	t.Setenv("CONFIG_TEST_NAME", "second")

	var cfg2 cachedConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, "first", cfg2.Name, "second load should be served from cache")
}

func TestLoadRejectsNonStruct(t *testing.T) {
	var n int
	assert.ErrorIs(t, config.Load(&n), config.ErrNotStructPointer)
	assert.ErrorIs(t, config.Parse(nil), config.ErrNotStructPointer)
	assert.ErrorIs(t, config.Parse(overlayConfig{}), config.ErrNotStructPointer)
}

func TestParseOverlaysHostValues(t *testing.T) {
	t.Run("unset variables keep host values", func(t *testing.T) {
		cfg := overlayConfig{Enabled: true, Level: "info", Other: "kept"}
		require.NoError(t, config.Parse(&cfg, env.Options{Prefix: "OVERLAY_A_"}))

		assert.True(t, cfg.Enabled)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "kept", cfg.Other)
	})

	t.Run("environment wins over host values", func(t *testing.T) {
		t.Setenv("OVERLAY_B_ENABLED", "false")
		t.Setenv("OVERLAY_B_LEVEL", "error")

		cfg := overlayConfig{Enabled: true, Level: "info"}
		require.NoError(t, config.Parse(&cfg, env.Options{Prefix: "OVERLAY_B_"}))

		assert.False(t, cfg.Enabled)
		assert.Equal(t, "error", cfg.Level)
	})

	t.Run("invalid values fail", func(t *testing.T) {
		t.Setenv("OVERLAY_C_ENABLED", "not-a-bool")

		var cfg overlayConfig
		assert.Error(t, config.Parse(&cfg, env.Options{Prefix: "OVERLAY_C_"}))
	})
}
