// Package resource implements a controller for limits shared by several arenas.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: Track and limit committed arena memory (non-blocking, fail-fast)
//   - Concurrency: Limit the number of concurrently running workers
//   - Throughput: Rate-limit operations with a token bucket
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded. A Controller
// satisfies arena.MemoryAcquirer, so arenas charge every page they commit
// against it:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	a := arena.New(64<<20, arena.WithMemoryAcquirer(rc))
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{
//	    MaxBackgroundWorkers: 4,
//	})
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
// # Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    OpsPerSecond: 10000,
//	})
//
//	if err := rc.AcquireOps(ctx, 1); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The underlying
// implementations use atomic operations and sync primitives.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
