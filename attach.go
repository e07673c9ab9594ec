package otlpsink

import (
	"strconv"
	"strings"

	"otlpsink/internal/config"
	apperrors "otlpsink/pkg/errors"
)

// attachOptionBufferSize is the one recognized attach option (spec.md §6).
const attachOptionBufferSize = "buffer_size"

// parsedAttach is the fully resolved host/port/buffer_size triple for one
// Attach call: attach options win over internal/config's environment
// defaults, which in turn win over the built-in localhost:4317/10000.
type parsedAttach struct {
	host       string
	port       int
	bufferSize int
}

// parseAttach resolves spec, the attach options map, against defaults
// loaded from the environment. spec is "host:port", optionally prefixed
// "otlp:"; either half may be absent, falling back to defaults.host/port.
func parseAttach(spec string, options map[string]string) (*parsedAttach, error) {
	defaults, err := config.Load()
	if err != nil {
		return nil, apperrors.NewInvalidAttach("failed to load attach defaults: " + err.Error())
	}

	host, port, err := parseSpec(spec, defaults)
	if err != nil {
		return nil, err
	}

	bufferSize := defaults.BufferSize
	if raw, ok := options[attachOptionBufferSize]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return nil, apperrors.NewInvalidAttach("buffer_size must be a positive integer, got " + raw)
		}
		bufferSize = n
	}

	return &parsedAttach{host: host, port: port, bufferSize: bufferSize}, nil
}

// parseSpec splits "host:port" (optionally "otlp:host:port") into its
// parts, falling back to defaults.host/port for whichever half is absent.
func parseSpec(spec string, defaults *config.Defaults) (string, int, error) {
	spec = strings.TrimSpace(spec)
	spec = strings.TrimPrefix(spec, "otlp:")

	if spec == "" {
		return defaults.Host, defaults.Port, nil
	}

	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		// Host only, e.g. "localhost".
		return spec, defaults.Port, nil
	}

	host, portStr := spec[:idx], spec[idx+1:]
	if host == "" {
		host = defaults.Host
	}
	if portStr == "" {
		return host, defaults.Port, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, apperrors.NewInvalidAttach("malformed host:port spec: " + spec)
	}
	return host, port, nil
}
