package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithNoEnvironmentOverrides(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost", d.Host)
	assert.Equal(t, 4317, d.Port)
	assert.Equal(t, 10000, d.BufferSize)
	assert.Equal(t, "localhost:4317", d.Addr())
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("OTLPSINK_HOST", "0.0.0.0")
	t.Setenv("OTLPSINK_PORT", "9317")
	t.Setenv("OTLPSINK_BUFFER_SIZE", "500")

	d, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", d.Host)
	assert.Equal(t, 9317, d.Port)
	assert.Equal(t, 500, d.BufferSize)
	assert.Equal(t, "0.0.0.0:9317", d.Addr())
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("OTLPSINK_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveBufferSize(t *testing.T) {
	t.Setenv("OTLPSINK_BUFFER_SIZE", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultsValidateRejectsEmptyHost(t *testing.T) {
	d := &Defaults{Host: "", Port: 4317, BufferSize: 10}
	assert.Error(t, d.Validate())
}
