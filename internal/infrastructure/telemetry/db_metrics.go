package telemetry

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const defaultPoolStatsInterval = 15 * time.Second

// DBPoolMetrics periodically records connection pool statistics from the
// underlying sql.DB.
type DBPoolMetrics struct {
	connections    *Gauge
	connectionsMax *Gauge

	sqlDB    *sql.DB
	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDBPoolMetrics creates the pool instruments on the meter. interval <= 0
// falls back to the default collection interval.
func NewDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB, interval time.Duration, logger *zap.Logger) (*DBPoolMetrics, error) {
	if interval <= 0 {
		interval = defaultPoolStatsInterval
	}

	connections, err := NewGauge(
		meter,
		"db_pool_connections",
		"Number of connections in the pool by state",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	connectionsMax, err := NewGauge(
		meter,
		"db_pool_connections_max",
		"Maximum number of open connections in the pool",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	return &DBPoolMetrics{
		connections:    connections,
		connectionsMax: connectionsMax,
		sqlDB:          sqlDB,
		interval:       interval,
		logger:         logger,
		stopCh:         make(chan struct{}),
	}, nil
}

// Start launches the background collector. Stop must be called on shutdown.
func (m *DBPoolMetrics) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.collect()
		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stopCh:
				return
			}
		}
	}()
	m.logger.Info("Database pool metrics collector started",
		zap.Duration("interval", m.interval),
	)
}

// Stop halts the collector and waits for the last collection to finish.
// Safe to call more than once.
func (m *DBPoolMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
	m.wg.Wait()
}

func (m *DBPoolMetrics) collect() {
	ctx := context.Background()
	stats := m.sqlDB.Stats()

	m.connections.Record(ctx, int64(stats.InUse), AttrDBPoolState.String("in_use"))
	m.connections.Record(ctx, int64(stats.Idle), AttrDBPoolState.String("idle"))
	m.connectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
}
