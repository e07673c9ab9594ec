package otlpsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otlpsink/internal/config"
)

func testDefaults() *config.Defaults {
	return &config.Defaults{Host: "localhost", Port: 4317, BufferSize: 10000}
}

func TestParseSpecDefaultsWhenEmpty(t *testing.T) {
	host, port, err := parseSpec("", testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 4317, port)
}

func TestParseSpecStripsOtlpPrefix(t *testing.T) {
	host, port, err := parseSpec("otlp:example.com:9999", testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, 9999, port)
}

func TestParseSpecHostOnlyUsesDefaultPort(t *testing.T) {
	host, port, err := parseSpec("example.com", testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, 4317, port)
}

func TestParseSpecRejectsNonNumericPort(t *testing.T) {
	_, _, err := parseSpec("example.com:notaport", testDefaults())
	assert.Error(t, err)
}

func TestParseSpecAllowsEphemeralPort(t *testing.T) {
	host, port, err := parseSpec("localhost:0", testDefaults())
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 0, port)
}

func TestParseAttachOptionsOverrideBufferSize(t *testing.T) {
	parsed, err := parseAttach("localhost:0", map[string]string{"buffer_size": "42"})
	require.NoError(t, err)
	assert.Equal(t, 42, parsed.bufferSize)
}

func TestParseAttachRejectsNonPositiveBufferSize(t *testing.T) {
	_, err := parseAttach("localhost:0", map[string]string{"buffer_size": "0"})
	assert.Error(t, err)
}

func TestParseAttachRejectsGarbageBufferSize(t *testing.T) {
	_, err := parseAttach("localhost:0", map[string]string{"buffer_size": "many"})
	assert.Error(t, err)
}
