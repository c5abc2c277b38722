package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// poolStat describes one exported pgxpool statistic.
type poolStat struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	value     func(*pgxpool.Stat) float64
}

// PoolStatsCollector implements prometheus.Collector for pgxpool connection metrics.
type PoolStatsCollector struct {
	pool    *pgxpool.Pool
	service string
	stats   []poolStat
}

// NewPoolStatsCollector creates a Prometheus collector that exports pgxpool
// connection pool statistics as metrics, labelled with the service name.
func NewPoolStatsCollector(pool *pgxpool.Pool, service string) *PoolStatsCollector {
	labels := []string{"service"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, labels, nil)
	}

	return &PoolStatsCollector{
		pool:    pool,
		service: service,
		stats: []poolStat{
			{
				desc:      desc("db_pool_acquired_connections", "Number of currently acquired connections"),
				valueType: prometheus.GaugeValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) },
			},
			{
				desc:      desc("db_pool_idle_connections", "Number of currently idle connections"),
				valueType: prometheus.GaugeValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) },
			},
			{
				desc:      desc("db_pool_total_connections", "Total number of connections in the pool"),
				valueType: prometheus.GaugeValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) },
			},
			{
				desc:      desc("db_pool_max_connections", "Maximum number of connections allowed"),
				valueType: prometheus.GaugeValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) },
			},
			{
				desc:      desc("db_pool_constructing_connections", "Number of connections currently being constructed"),
				valueType: prometheus.GaugeValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.ConstructingConns()) },
			},
			{
				desc:      desc("db_pool_acquire_count_total", "Total number of connection acquires"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.AcquireCount()) },
			},
			{
				desc:      desc("db_pool_acquire_duration_seconds_total", "Total time spent acquiring connections in seconds"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return s.AcquireDuration().Seconds() },
			},
			{
				desc:      desc("db_pool_canceled_acquire_count_total", "Total number of canceled connection acquires"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.CanceledAcquireCount()) },
			},
			{
				desc:      desc("db_pool_empty_acquire_count_total", "Total number of acquires that had to wait for a connection"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.EmptyAcquireCount()) },
			},
			{
				desc:      desc("db_pool_new_connections_total", "Total number of new connections created"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.NewConnsCount()) },
			},
			{
				desc:      desc("db_pool_max_lifetime_destroy_total", "Total connections destroyed due to max lifetime"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.MaxLifetimeDestroyCount()) },
			},
			{
				desc:      desc("db_pool_max_idle_destroy_total", "Total connections destroyed due to max idle time"),
				valueType: prometheus.CounterValue,
				value:     func(s *pgxpool.Stat) float64 { return float64(s.MaxIdleDestroyCount()) },
			},
		},
	}
}

// Describe sends the descriptors of all metrics to the provided channel.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, s := range c.stats {
		ch <- s.desc
	}
}

// Collect reads current pool statistics and sends them as Prometheus metrics.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()
	for _, s := range c.stats {
		ch <- prometheus.MustNewConstMetric(s.desc, s.valueType, s.value(stat), c.service)
	}
}

// RegisterPoolMetrics creates and registers a pgxpool metrics collector with
// the default Prometheus registry.
func RegisterPoolMetrics(pool *pgxpool.Pool, service string) {
	prometheus.MustRegister(NewPoolStatsCollector(pool, service))
}
