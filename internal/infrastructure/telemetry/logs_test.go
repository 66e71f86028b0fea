package telemetry

import (
	"context"
	"testing"

	"github.com/ketoan/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProviderDisabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestNewLoggerProviderRequiresBothFlags(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		LogsEnabled: false,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
}

func TestZapBridgeCoreNopWhenDisabled(t *testing.T) {
	core := NewZapBridgeCore("ketoan-backend", nil)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	disabled := &LoggerProvider{}
	core = NewZapBridgeCore("ketoan-backend", disabled)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestNewBridgedLoggerWritesBothCores(t *testing.T) {
	baseCore, baseLogs := observer.New(zapcore.InfoLevel)
	bridgeCore, bridgeLogs := observer.New(zapcore.InfoLevel)

	log := NewBridgedLogger(baseCore, bridgeCore)
	log.Info("đã khởi động", zap.String("env", "test"))

	require.Equal(t, 1, baseLogs.Len())
	require.Equal(t, 1, bridgeLogs.Len())
	assert.Equal(t, "đã khởi động", bridgeLogs.All()[0].Message)
}
