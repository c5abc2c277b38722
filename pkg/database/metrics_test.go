package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolStatsCollector_NotNil(t *testing.T) {
	// Describe works with a nil pool; only Collect touches it.
	c := NewPoolStatsCollector(nil, "reviews")
	require.NotNil(t, c)
	assert.Equal(t, "reviews", c.service)
}

func TestPoolStatsCollector_ImplementsCollector(t *testing.T) {
	var _ prometheus.Collector = NewPoolStatsCollector(nil, "reviews")
}

func TestPoolStatsCollector_Describe(t *testing.T) {
	c := NewPoolStatsCollector(nil, "reviews")

	ch := make(chan *prometheus.Desc, 20)
	c.Describe(ch)
	close(ch)

	var descs []string
	for d := range ch {
		descs = append(descs, d.String())
	}
	assert.Len(t, descs, 12)

	expected := []string{
		"db_pool_acquired_connections",
		"db_pool_idle_connections",
		"db_pool_total_connections",
		"db_pool_max_connections",
		"db_pool_constructing_connections",
		"db_pool_acquire_count_total",
		"db_pool_acquire_duration_seconds_total",
		"db_pool_canceled_acquire_count_total",
		"db_pool_empty_acquire_count_total",
		"db_pool_new_connections_total",
		"db_pool_max_lifetime_destroy_total",
		"db_pool_max_idle_destroy_total",
	}
	for _, name := range expected {
		found := false
		for _, d := range descs {
			if strings.Contains(d, name) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected descriptor containing %q", name)
	}
}
