package arena

import "log/slog"

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer for the arena.
// Every committed page is acquired from it and every decommitted page is
// released to it. A refused acquisition is fatal.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// WithPageSize sets the commit granularity. It must be a power of two and a
// multiple of the operating system page size. Defaults to the OS page size.
//
// The page size is fixed for the lifetime of the arena.
func WithPageSize(size uint64) Option {
	return func(a *Arena) {
		a.pageSize = size
	}
}

// WithAlignment sets the default alignment (see SetAlignment).
// 0 is treated as 1.
func WithAlignment(align uint64) Option {
	return func(a *Arena) {
		if align == 0 {
			align = 1
		}
		a.alignment = align
	}
}

// WithLogger sets the logger used for commit, decommit and release events.
// They are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		a.logger = l
	}
}
