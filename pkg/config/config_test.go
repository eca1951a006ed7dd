package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsieve/pkg/config"
)

// chdir stands in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray config file is picked up.
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultGridSize, cfg.GridSize)
	assert.Equal(t, config.DefaultCellCap, cfg.CellCap)
	assert.Equal(t, config.DefaultMinRefStars, cfg.MinRefStars)
	assert.Equal(t, config.DefaultMinFlux, cfg.MinFlux)
	assert.Equal(t, config.DefaultMinFWHM, cfg.MinFWHM)
	assert.Equal(t, config.DefaultMaxElongation, cfg.MaxElongation)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STARSIEVE_GRID_SIZE", "64")
	t.Setenv("STARSIEVE_CELL_CAP", "3")
	t.Setenv("STARSIEVE_MIN_FLUX", "10.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.GridSize)
	assert.Equal(t, 3, cfg.CellCap)
	assert.Equal(t, 10.5, cfg.MinFlux)

	g := cfg.Grid()
	assert.Equal(t, 64, g.Size)
	assert.Equal(t, 3, g.CellCap)

	f := cfg.Filter()
	assert.Equal(t, 10.5, f.MinFlux)
}

func TestLoadRejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero grid size", "STARSIEVE_GRID_SIZE", "0"},
		{"negative grid size", "STARSIEVE_GRID_SIZE", "-128"},
		{"zero cell cap", "STARSIEVE_CELL_CAP", "0"},
		{"zero min ref stars", "STARSIEVE_MIN_REF_STARS", "0"},
		{"negative min flux", "STARSIEVE_MIN_FLUX", "-1"},
		{"negative min fwhm", "STARSIEVE_MIN_FWHM", "-0.5"},
		{"zero max elongation", "STARSIEVE_MAX_ELONGATION", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.GridSize = 0
	assert.Error(t, cfg.Validate())
}

func TestEffectiveLogLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"default", config.Config{}, "info"},
		{"explicit wins", config.Config{LogLevel: "trace", Verbose: true}, "trace"},
		{"verbose", config.Config{Verbose: true}, "debug"},
		{"quiet", config.Config{Quiet: true}, "warn"},
		{"both means quiet", config.Config{Verbose: true, Quiet: true}, "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.EffectiveLogLevel())
		})
	}
}
