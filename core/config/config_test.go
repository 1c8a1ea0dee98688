package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/core/config"
)

type serverConfig struct {
	Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
	Name string `env:"TEST_CFG_NAME" envDefault:"bff"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_MISSING_SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "bff", cfg.Name)
}

func TestLoad_CachesPerType(t *testing.T) {
	var first serverConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not change the
	// cached result.
	t.Setenv("TEST_CFG_PORT", "9999")

	var second serverConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_CFG_MISSING_SECRET")
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[serverConfig](nil)
	require.ErrorIs(t, err, config.ErrNilConfig)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
