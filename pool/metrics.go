package pool

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a prometheus.Collector reporting connection-pool state:
// idle/in-use gauges and a checkout-wait histogram, following the
// Collector shape used elsewhere in this pack for socket-level
// observability (Describe/Collect pair built from fixed descriptors).
type Metrics struct {
	pool *Pool

	idleDesc  *prometheus.Desc
	inUseDesc *prometheus.Desc

	mu            sync.Mutex
	checkoutWait  prometheus.Histogram
}

func newMetrics(p *Pool) *Metrics {
	return &Metrics{
		pool: p,
		idleDesc: prometheus.NewDesc(
			"rac_pool_idle_sessions", "Number of idle sessions currently held by the pool.", nil, nil),
		inUseDesc: prometheus.NewDesc(
			"rac_pool_in_use_sessions", "Number of sessions currently checked out of the pool.", nil, nil),
		checkoutWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rac_pool_checkout_wait_seconds",
			Help:    "Time spent waiting for Pool.Checkout to return a session.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.idleDesc
	ch <- m.inUseDesc
	m.checkoutWait.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	idle, inUse := m.pool.Stats()
	ch <- prometheus.MustNewConstMetric(m.idleDesc, prometheus.GaugeValue, float64(idle))
	ch <- prometheus.MustNewConstMetric(m.inUseDesc, prometheus.GaugeValue, float64(inUse))
	m.checkoutWait.Collect(ch)
}

func (m *Metrics) observeCheckoutWait(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkoutWait.Observe(d.Seconds())
}
