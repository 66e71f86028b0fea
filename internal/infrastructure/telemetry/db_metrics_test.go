package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestDBPoolMetricsCollectsOnStart(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	provider, reader := newManualReader(t)
	meter := provider.Meter("db.pool")

	pm, err := NewDBPoolMetrics(meter, db, time.Minute, zap.NewNop())
	require.NoError(t, err)

	pm.Start()
	pm.Stop()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.NotNil(t, findMetric(rm, "db_pool_connections"))
	assert.NotNil(t, findMetric(rm, "db_pool_connections_max"))
}

func TestDBPoolMetricsStopIsIdempotent(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	provider, _ := newManualReader(t)
	pm, err := NewDBPoolMetrics(provider.Meter("db.pool"), db, time.Minute, zap.NewNop())
	require.NoError(t, err)

	pm.Start()
	pm.Stop()
	pm.Stop()
}
