// Package config loads runtime configuration for starsieve. Values come,
// in order of precedence, from command-line flags (bound by the CLI),
// environment variables (STARSIEVE_*), .env files, a .starsieve.yaml
// config file, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"starsieve/pkg/catalog"
	"starsieve/pkg/refstar"
)

// Defaults for the selection policy. These are policy knobs, not
// per-invocation parameters; the config layer exists so tests and unusual
// setups can shrink the grid without recompiling.
const (
	DefaultGridSize      = 128
	DefaultCellCap       = 6
	DefaultMinRefStars   = 5
	DefaultMinFlux       = 30.0
	DefaultMinFWHM       = 1.0
	DefaultMaxElongation = 2.0
)

// Config holds the application configuration.
type Config struct {
	// Selection policy
	GridSize      int
	CellCap       int
	MinRefStars   int
	MinFlux       float64
	MinFWHM       float64
	MaxElongation float64

	// Logging
	LogLevel  string
	LogFormat string
	Verbose   bool
	Quiet     bool

	// Config file actually used, if any
	ConfigFile string
}

// Load builds the configuration from env, .env files, and an optional
// config file. Flag overrides are applied afterwards by the CLI layer.
func Load() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("STARSIEVE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("grid_size", DefaultGridSize)
	v.SetDefault("cell_cap", DefaultCellCap)
	v.SetDefault("min_ref_stars", DefaultMinRefStars)
	v.SetDefault("min_flux", DefaultMinFlux)
	v.SetDefault("min_fwhm", DefaultMinFWHM)
	v.SetDefault("max_elongation", DefaultMaxElongation)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")

	// Search for config in standard locations; absence is fine.
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".starsieve")
	_ = v.ReadInConfig()

	cfg := &Config{
		GridSize:      v.GetInt("grid_size"),
		CellCap:       v.GetInt("cell_cap"),
		MinRefStars:   v.GetInt("min_ref_stars"),
		MinFlux:       v.GetFloat64("min_flux"),
		MinFWHM:       v.GetFloat64("min_fwhm"),
		MaxElongation: v.GetFloat64("max_elongation"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		ConfigFile:    v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects policy values that would break the pipeline. Env and
// config-file input arrives unchecked, and a zero grid size divides by
// zero inside the thinner.
func (c *Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("invalid configuration: grid_size must be positive, got %d", c.GridSize)
	}
	if c.CellCap <= 0 {
		return fmt.Errorf("invalid configuration: cell_cap must be positive, got %d", c.CellCap)
	}
	if c.MinRefStars <= 0 {
		return fmt.Errorf("invalid configuration: min_ref_stars must be positive, got %d", c.MinRefStars)
	}
	if c.MinFlux < 0 {
		return fmt.Errorf("invalid configuration: min_flux must not be negative, got %g", c.MinFlux)
	}
	if c.MinFWHM < 0 {
		return fmt.Errorf("invalid configuration: min_fwhm must not be negative, got %g", c.MinFWHM)
	}
	if c.MaxElongation <= 0 {
		return fmt.Errorf("invalid configuration: max_elongation must be positive, got %g", c.MaxElongation)
	}
	return nil
}

// Filter returns the catalog quality filter described by the config.
func (c *Config) Filter() catalog.Filter {
	return catalog.Filter{
		MinFlux:       c.MinFlux,
		MinFWHM:       c.MinFWHM,
		MaxElongation: c.MaxElongation,
	}
}

// Grid returns the thinning grid described by the config.
func (c *Config) Grid() refstar.Grid {
	return refstar.Grid{Size: c.GridSize, CellCap: c.CellCap}
}

// EffectiveLogLevel resolves the log level with flags taking precedence:
// explicit level, then --verbose/--quiet shortcuts, then default info.
func (c *Config) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	if c.Verbose && c.Quiet {
		return "warn"
	}
	if c.Verbose {
		return "debug"
	}
	if c.Quiet {
		return "warn"
	}
	return "info"
}

// loadEnvFiles loads .env files from the working directory if present.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}
