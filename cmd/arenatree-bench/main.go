// Command arenatree-bench drives arena-backed trees with a synthetic workload.
//
// Every worker owns one tree. All arenas charge a shared memory budget and
// all operations draw from a shared rate limit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/arenatree"
	"github.com/hupe1980/arenatree/bst"
	"github.com/hupe1980/arenatree/resource"
	"github.com/hupe1980/arenatree/testutil"
)

type config struct {
	workers     int
	parallel    int64
	ops         int
	keyspace    uint64
	dist        testutil.Distribution
	skew        float64
	valueSize   int
	removePct   int
	findPct     int
	capacity    uint64
	memoryLimit int64
	qps         int64
	seed        int64
	metricsAddr string
}

func main() {
	var (
		cfg      config
		distName string
		logLevel string
		jsonLogs bool
	)

	flag.IntVar(&cfg.workers, "workers", 4, "number of trees")
	flag.Int64Var(&cfg.parallel, "parallel", 4, "workers running at the same time")
	flag.IntVar(&cfg.ops, "ops", 100_000, "operations per worker")
	flag.Uint64Var(&cfg.keyspace, "keyspace", 1<<16, "number of distinct keys")
	flag.StringVar(&distName, "dist", "uniform", "key distribution (uniform, zipf, sequential)")
	flag.Float64Var(&cfg.skew, "skew", 1.2, "zipf skew, must be > 1")
	flag.IntVar(&cfg.valueSize, "value-size", 32, "value size in bytes")
	flag.IntVar(&cfg.removePct, "remove", 20, "percentage of removals")
	flag.IntVar(&cfg.findPct, "find", 30, "percentage of lookups")
	flag.Uint64Var(&cfg.capacity, "capacity", arenatree.DefaultCapacity, "arena capacity per worker in bytes")
	flag.Int64Var(&cfg.memoryLimit, "memory-limit", 0, "committed bytes allowed across all arenas, exceeding it aborts (0 = unlimited)")
	flag.Int64Var(&cfg.qps, "qps", 0, "operations per second across all workers (0 = unlimited)")
	flag.Int64Var(&cfg.seed, "seed", 42, "random seed")
	flag.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.BoolVar(&jsonLogs, "json", false, "log as JSON")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}

	logger := arenatree.NewTextLogger(level)
	if jsonLogs {
		logger = arenatree.NewJSONLogger(level)
	}

	d, ok := testutil.ParseDistribution(distName)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid -dist: %q\n", distName)
		os.Exit(2)
	}
	cfg.dist = d

	if cfg.removePct+cfg.findPct > 100 || cfg.removePct < 0 || cfg.findPct < 0 {
		fmt.Fprintln(os.Stderr, "-remove and -find must be non-negative and sum to at most 100")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bench failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *arenatree.Logger) error {
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     cfg.memoryLimit,
		MaxBackgroundWorkers: cfg.parallel,
		OpsPerSecond:         cfg.qps,
	})

	basic := &arenatree.BasicMetricsCollector{}
	collectors := multiCollector{basic}

	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collectors = append(collectors, newPromCollector(reg, rc))

		srv := &http.Server{
			Addr:              cfg.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "addr", cfg.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for id := range cfg.workers {
		g.Go(func() error {
			if err := rc.AcquireBackground(ctx); err != nil {
				return err
			}
			defer rc.ReleaseBackground()

			return runWorker(ctx, id, cfg, rc, collectors, logger)
		})
	}

	err := g.Wait()

	stats := basic.GetStats()
	logger.Info("bench finished",
		"elapsed", time.Since(start),
		"inserts", stats.InsertCount,
		"insert_avg_ns", stats.InsertAvgNanos,
		"finds", stats.FindCount,
		"find_misses", stats.FindMisses,
		"find_avg_ns", stats.FindAvgNanos,
		"removes", stats.RemoveCount,
		"remove_misses", stats.RemoveMisses,
		"memory_in_use", rc.MemoryUsage(),
	)

	return err
}

func runWorker(ctx context.Context, id int, cfg config, rc *resource.Controller, mc arenatree.MetricsCollector, logger *arenatree.Logger) error {
	wlog := logger.WithName(fmt.Sprintf("worker-%d", id))

	t, err := arenatree.New(bst.Lexical,
		arenatree.WithCapacity(cfg.capacity),
		arenatree.WithResourceController(rc),
		arenatree.WithMetricsCollector(mc),
		arenatree.WithLogger(wlog),
	)
	if err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}
	defer t.Close()

	rng := testutil.NewRNG(cfg.seed + int64(id))
	keys := rng.Keys(cfg.dist, cfg.ops, cfg.keyspace, cfg.skew)

	value := make([]byte, cfg.valueSize)
	rng.FillBytes(value)

	// Inserted entries, so removals can target a specific duplicate.
	var live []bst.Entry

	for i, k := range keys {
		if err := rc.AcquireOps(ctx, 1); err != nil {
			return err
		}

		key := bst.Uint64Key(k)

		switch p := rng.Intn(100); {
		case p < cfg.removePct && len(live) > 0:
			j := rng.Intn(len(live))
			if _, err := t.Remove(live[j]); err != nil {
				return fmt.Errorf("worker %d: remove: %w", id, err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		case p < cfg.removePct+cfg.findPct:
			if _, err := t.FindAll(key); err != nil {
				return err
			}
		default:
			e, err := t.Insert(key, value)
			if err != nil {
				return err
			}
			live = append(live, e)
		}

		if i%10_000 == 0 {
			wlog.Debug("progress", "ops", i, "size", t.Size(), "height", t.Height())
		}
	}

	if t.Size() != len(live) {
		return fmt.Errorf("worker %d: tree holds %d entries, expected %d", id, t.Size(), len(live))
	}

	wlog.Info("worker finished",
		"size", t.Size(),
		"height", t.Height(),
		"committed", t.Arena().Committed(),
		"pos", t.Arena().Pos(),
	)

	return nil
}
