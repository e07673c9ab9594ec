package receiver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otlpsink/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDecodeLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestReceiverStartBindsAndReachesRunning(t *testing.T) {
	st := store.New(100, nil)
	r := New("127.0.0.1", 0, st, testLogger(), testDecodeLogger())

	require.NoError(t, r.Start())
	assert.Equal(t, StateRunning, r.State())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	assert.Equal(t, StateStopped, r.State())
}

func TestReceiverStopIsIdempotent(t *testing.T) {
	st := store.New(100, nil)
	r := New("127.0.0.1", 0, st, testLogger(), testDecodeLogger())
	require.NoError(t, r.Start())

	ctx := context.Background()
	require.NoError(t, r.Stop(ctx))
	require.NoError(t, r.Stop(ctx))
	assert.Equal(t, StateStopped, r.State())
}

func TestReceiverStopBeforeStartIsNoOp(t *testing.T) {
	st := store.New(100, nil)
	r := New("127.0.0.1", 0, st, testLogger(), testDecodeLogger())
	require.NoError(t, r.Stop(context.Background()))
	assert.Equal(t, StateNew, r.State())
}

func TestReceiverStartTwiceFromRunningFails(t *testing.T) {
	st := store.New(100, nil)
	r := New("127.0.0.1", 0, st, testLogger(), testDecodeLogger())
	require.NoError(t, r.Start())
	defer r.Stop(context.Background())

	err := r.Start()
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "new", StateNew.String())
	assert.Equal(t, "starting", StateStarting.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopping", StateStopping.String())
	assert.Equal(t, "stopped", StateStopped.String())
}
