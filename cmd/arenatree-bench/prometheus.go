package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/arenatree"
	"github.com/hupe1980/arenatree/resource"
)

// promCollector implements arenatree.MetricsCollector.
type promCollector struct {
	opLatency *prometheus.HistogramVec
	matches   prometheus.Histogram
	cleared   prometheus.Counter
}

var _ arenatree.MetricsCollector = (*promCollector)(nil)

func newPromCollector(reg prometheus.Registerer, rc *resource.Controller) *promCollector {
	c := &promCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arenatree_operation_latency_seconds",
			Help:    "Latency of tree operations",
			Buckets: prometheus.ExponentialBuckets(50e-9, 2, 16),
		}, []string{"op", "status"}),
		matches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arenatree_find_matches",
			Help:    "Entries returned per find",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arenatree_cleared_entries_total",
			Help: "Entries dropped by Clear",
		}),
	}

	reg.MustRegister(c.opLatency, c.matches, c.cleared)
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "arenatree_committed_bytes",
		Help: "Bytes committed by all arenas",
	}, func() float64 {
		return float64(rc.MemoryUsage())
	}))

	return c
}

func status(err error) string {
	if err != nil {
		return "miss"
	}
	return "ok"
}

func (c *promCollector) RecordInsert(d time.Duration, err error) {
	c.opLatency.WithLabelValues("insert", status(err)).Observe(d.Seconds())
}

func (c *promCollector) RecordFind(matches int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("find", status(err)).Observe(d.Seconds())
	c.matches.Observe(float64(matches))
}

func (c *promCollector) RecordRemove(d time.Duration, err error) {
	c.opLatency.WithLabelValues("remove", status(err)).Observe(d.Seconds())
}

func (c *promCollector) RecordClear(removed int) {
	c.cleared.Add(float64(removed))
}

// multiCollector fans out to several collectors.
type multiCollector []arenatree.MetricsCollector

func (m multiCollector) RecordInsert(d time.Duration, err error) {
	for _, c := range m {
		c.RecordInsert(d, err)
	}
}

func (m multiCollector) RecordFind(matches int, d time.Duration, err error) {
	for _, c := range m {
		c.RecordFind(matches, d, err)
	}
}

func (m multiCollector) RecordRemove(d time.Duration, err error) {
	for _, c := range m {
		c.RecordRemove(d, err)
	}
}

func (m multiCollector) RecordClear(removed int) {
	for _, c := range m {
		c.RecordClear(removed)
	}
}
