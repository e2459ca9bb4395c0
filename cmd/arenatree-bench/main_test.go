package main

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenatree"
	"github.com/hupe1980/arenatree/resource"
	"github.com/hupe1980/arenatree/testutil"
)

func testConfig() config {
	return config{
		workers:   3,
		parallel:  2,
		ops:       5000,
		keyspace:  256,
		dist:      testutil.Zipf,
		skew:      1.3,
		valueSize: 16,
		removePct: 25,
		findPct:   25,
		capacity:  8 << 20,
		seed:      1,
	}
}

func TestRun(t *testing.T) {
	for _, d := range []testutil.Distribution{testutil.Uniform, testutil.Zipf, testutil.Sequential} {
		t.Run(d.String(), func(t *testing.T) {
			cfg := testConfig()
			cfg.dist = d

			require.NoError(t, run(context.Background(), cfg, arenatree.NoopLogger()))
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	cfg := testConfig()
	cfg.qps = 10

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// The rate limiter refuses to wait past the deadline.
	assert.Error(t, run(ctx, cfg, arenatree.NoopLogger()))
}

func TestPromCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	rc := resource.NewController(resource.Config{})
	c := newPromCollector(reg, rc)

	tr, err := arenatree.New(nil, arenatree.WithCapacity(1<<20),
		arenatree.WithResourceController(rc),
		arenatree.WithMetricsCollector(multiCollector{c}),
	)
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Insert([]byte("a"), nil)
	require.NoError(t, err)
	_, err = tr.Insert([]byte("a"), nil)
	require.NoError(t, err)
	_, err = tr.FindAll([]byte("a"))
	require.NoError(t, err)
	_, err = tr.RemoveKey([]byte("b"))
	require.ErrorIs(t, err, arenatree.ErrNotFound)
	require.NoError(t, tr.Clear())

	assert.Equal(t, 2.0, promtestutil.ToFloat64(c.cleared))
	assert.Equal(t, 3, promtestutil.CollectAndCount(c.opLatency))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var committed float64
	for _, mf := range mfs {
		if mf.GetName() == "arenatree_committed_bytes" {
			committed = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(tr.Arena().Committed()), committed)
}
