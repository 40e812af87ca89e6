package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shortname/pkg/config"
)

type bindingConfig struct {
	Source     string `env:"SOURCE" envDefault:"name"`
	Target     string `env:"TARGET" envDefault:"short_name"`
	AutoAdjust bool   `env:"AUTO_ADJUST" envDefault:"false"`
}

type requiredConfig struct {
	Table string `env:"CONFIG_TEST_TABLE,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg bindingConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("CONFIG_TEST_DEFAULTS_")))

	assert.Equal(t, "name", cfg.Source)
	assert.Equal(t, "short_name", cfg.Target)
	assert.False(t, cfg.AutoAdjust)
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("STAFF_SOURCE", "full_name")
	t.Setenv("STAFF_AUTO_ADJUST", "true")
	t.Setenv("GUEST_TARGET", "nickname")

	var staff, guest bindingConfig
	require.NoError(t, config.Load(&staff, config.WithPrefix("STAFF_")))
	require.NoError(t, config.Load(&guest, config.WithPrefix("GUEST_")))

	assert.Equal(t, "full_name", staff.Source)
	assert.True(t, staff.AutoAdjust)
	assert.Equal(t, "short_name", staff.Target)

	assert.Equal(t, "name", guest.Source)
	assert.Equal(t, "nickname", guest.Target)
}

func TestLoad_Required(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_TABLE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_EnvFile(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_TABLE")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_TEST_TABLE=people\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CONFIG_TEST_TABLE") })

	var cfg requiredConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "people", cfg.Table)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	var cfg bindingConfig
	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *bindingConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_TABLE")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
