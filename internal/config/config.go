package config

import (
	"time"

	"pystart/internal/catalog"
)

// Config represents the main application configuration.
type Config struct {
	Setup   SetupConfig   `yaml:"setup"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`

	// Catalog overrides the built-in library catalog when non-empty.
	Catalog catalog.Catalog `yaml:"catalog,omitempty"`

	// Runtime version information
	Version string `yaml:"-"`
}

// SetupConfig holds settings for the setup run itself.
type SetupConfig struct {
	Python      string        `yaml:"python"`                // interpreter for venv creation (default: python3)
	VenvName    string        `yaml:"venv_name"`             // environment directory name (default: venv)
	SrcName     string        `yaml:"src_name"`              // source directory name (default: src)
	DefaultDir  string        `yaml:"default_dir,omitempty"` // pre-filled target directory
	StepTimeout time.Duration `yaml:"step_timeout"`          // per-step subprocess deadline

	// HaltOnFailure stops the sequence at the first failed step instead of
	// attempting the remaining ones.
	HaltOnFailure bool `yaml:"halt_on_failure"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	// ClearLogBetweenRuns empties the progress log when a new run starts.
	// The log is always append-only within a run.
	ClearLogBetweenRuns bool `yaml:"clear_log_between_runs"`

	MouseMode string `yaml:"mouse_mode"` // "enabled" (default) or "disabled"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  bool   `yaml:"file"`  // write pystart.log in the config dir
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Setup: SetupConfig{
			Python:        "python3",
			VenvName:      "venv",
			SrcName:       "src",
			StepTimeout:   5 * time.Minute,
			HaltOnFailure: true,
		},
		UI: UIConfig{
			ClearLogBetweenRuns: false,
			MouseMode:           "enabled",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  true,
		},
	}
}

// EffectiveCatalog returns the configured catalog, falling back to the
// built-in one when the config file does not define any categories.
func (c *Config) EffectiveCatalog() catalog.Catalog {
	if len(c.Catalog.Categories) > 0 {
		return c.Catalog
	}
	return catalog.Default()
}
