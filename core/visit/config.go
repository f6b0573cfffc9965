package visit

import (
	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/visitlog/core/config"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "USER_VISIT_"

// Config controls the Recorder. Resolve it once at startup.
type Config struct {
	// Disabled turns recording off. NewRecorder refuses to build a Recorder.
	Disabled bool `env:"RECORDING_DISABLED"`
	// DuplicateLogLevel is the severity of the line logged per duplicate conflict.
	DuplicateLogLevel LogLevel `env:"DUPLICATE_LOG_LEVEL"`

	// Bypass skips recording for matching requests. Nil never bypasses.
	Bypass func(Request) bool
	// ContextExtractor supplies the optional record context. Nil stores none.
	ContextExtractor func(Request) map[string]any
}

// DefaultConfig returns recording enabled with duplicates logged at warning.
func DefaultConfig() Config {
	return Config{DuplicateLogLevel: LevelWarning}
}

// LoadConfig overlays USER_VISIT_* environment variables on host. Variables that
// are set win over host values.
func LoadConfig(host Config) (Config, error) {
	cfg := host
	if err := config.Parse(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.DuplicateLogLevel == "" {
		cfg.DuplicateLogLevel = LevelWarning
	}
	return cfg, nil
}

// Validate checks the fields that can hold invalid values.
func (c Config) Validate() error {
	return c.DuplicateLogLevel.Validate()
}

func (c Config) bypass(req Request) bool {
	return c.Bypass != nil && c.Bypass(req)
}

func (c Config) extract(req Request) map[string]any {
	if c.ContextExtractor == nil {
		return nil
	}
	m := c.ContextExtractor(req)
	if len(m) == 0 {
		return nil
	}
	return m
}
