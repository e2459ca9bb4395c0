package arenatree

import (
	"fmt"
	"iter"
	"math/bits"
	"time"

	"github.com/hupe1980/arenatree/arena"
	"github.com/hupe1980/arenatree/bst"
	"github.com/hupe1980/arenatree/internal/mmap"
	"github.com/hupe1980/arenatree/resource"
)

// MaxCapacity is the largest arena capacity New accepts.
const MaxCapacity = 1 << 46

// Tree is a binary search tree that owns the arena its nodes live in.
// Not thread-safe.
type Tree struct {
	arena   *arena.Arena
	tree    *bst.Tree
	logger  *Logger
	metrics MetricsCollector
	base    uint64 // arena position just past the tree's root record
	closed  bool
}

// New reserves an arena and creates an empty tree in it.
// If cmp is nil, keys are ordered lexicographically.
func New(cmp bst.Comparator, optFns ...Option) (*Tree, error) {
	o := applyOptions(optFns)

	if err := o.validate(); err != nil {
		return nil, err
	}

	arenaOpts := []arena.Option{
		arena.WithLogger(o.logger.Logger),
	}
	if o.pageSize != 0 {
		arenaOpts = append(arenaOpts, arena.WithPageSize(o.pageSize))
	}
	if o.alignment != 0 {
		arenaOpts = append(arenaOpts, arena.WithAlignment(o.alignment))
	}
	if o.controller != nil {
		arenaOpts = append(arenaOpts, arena.WithMemoryAcquirer(o.controller))
	}

	a := arena.New(o.capacity, arenaOpts...)
	tree := bst.New(a, cmp)

	return &Tree{
		arena:   a,
		tree:    tree,
		logger:  o.logger,
		metrics: o.metricsCollector,
		base:    a.Pos(),
	}, nil
}

func (o *options) validate() error {
	if o.capacity == 0 || o.capacity > MaxCapacity {
		return &ErrInvalidCapacity{Capacity: o.capacity}
	}

	osPage := uint64(mmap.PageSize())
	page := osPage
	if o.pageSize != 0 {
		if bits.OnesCount64(o.pageSize) != 1 || o.pageSize%osPage != 0 {
			return &ErrInvalidPageSize{PageSize: o.pageSize, OSPage: osPage}
		}
		page = o.pageSize
	}

	if o.alignment != 0 && bits.OnesCount64(o.alignment) != 1 {
		return &ErrInvalidAlignment{Alignment: o.alignment}
	}

	// The arena commits its first page immediately. Refuse up front rather
	// than panic inside the arena.
	if limit := o.controller.MemoryLimit(); limit > 0 {
		if o.controller.MemoryUsage()+int64(page) > limit { //nolint:gosec // page size is bounded
			return fmt.Errorf("reserve first page: %w", resource.ErrMemoryLimitExceeded)
		}
	}

	return nil
}

// Insert adds a key/value pair. Equal keys are kept in insertion order.
func (t *Tree) Insert(key, value []byte) (bst.Entry, error) {
	if t.closed {
		return bst.Entry{}, ErrClosed
	}

	start := time.Now()
	e := t.tree.Insert(key, value)
	t.metrics.RecordInsert(time.Since(start), nil)
	t.logger.LogInsert(e.Offset(), len(key), len(value), nil)

	return e, nil
}

// Find returns the earliest inserted entry whose key equals key.
// It returns an error wrapping ErrNotFound if there is none.
func (t *Tree) Find(key []byte) (bst.Entry, error) {
	if t.closed {
		return bst.Entry{}, ErrClosed
	}

	start := time.Now()
	e, ok := t.tree.Find(key)
	if !ok {
		err := notFound(key)
		t.metrics.RecordFind(0, time.Since(start), err)
		return bst.Entry{}, err
	}
	t.metrics.RecordFind(1, time.Since(start), nil)

	return e, nil
}

// FindAll returns every entry whose key equals key, in insertion order.
// A key without entries yields an empty result, not an error.
func (t *Tree) FindAll(key []byte) ([]bst.Entry, error) {
	if t.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	entries := t.tree.FindAll(key)
	t.metrics.RecordFind(len(entries), time.Since(start), nil)

	return entries, nil
}

// Remove unlinks the entry e, leaving other entries with the same key in
// place. It returns an error wrapping ErrNotFound if e is not linked into t.
func (t *Tree) Remove(e bst.Entry) (bst.Entry, error) {
	if t.closed {
		return bst.Entry{}, ErrClosed
	}

	start := time.Now()
	removed, ok := t.tree.Remove(e)

	var err error
	if !ok {
		err = fmt.Errorf("%w: entry at offset %d", ErrNotFound, e.Offset())
	}
	t.metrics.RecordRemove(time.Since(start), err)
	t.logger.LogRemove(removed.Key(), err)

	return removed, err
}

// RemoveKey unlinks the earliest inserted entry whose key equals key.
func (t *Tree) RemoveKey(key []byte) (bst.Entry, error) {
	if t.closed {
		return bst.Entry{}, ErrClosed
	}

	start := time.Now()
	removed, ok := t.tree.RemoveKey(key)

	var err error
	if !ok {
		err = notFound(key)
	}
	t.metrics.RecordRemove(time.Since(start), err)
	t.logger.LogRemove(key, err)

	return removed, err
}

// Size returns the number of entries. A closed tree has none.
func (t *Tree) Size() int {
	if t.closed {
		return 0
	}
	return t.tree.Size()
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t.closed {
		return 0
	}
	return t.tree.Height()
}

// Inorder calls visit for every entry in ascending key order.
func (t *Tree) Inorder(visit func(bst.Entry)) error {
	if t.closed {
		return ErrClosed
	}
	t.tree.Inorder(visit)
	return nil
}

// All returns an iterator over all entries in ascending key order.
// A closed tree yields nothing.
func (t *Tree) All() iter.Seq[bst.Entry] {
	if t.closed {
		return func(func(bst.Entry) bool) {}
	}
	return t.tree.All()
}

// Clear removes all entries and rewinds the arena to just after the tree's
// root record, so the memory of removed nodes is reused.
//
// Entries obtained before Clear must not be used afterwards, nor may bytes
// allocated from Arena.
func (t *Tree) Clear() error {
	if t.closed {
		return ErrClosed
	}

	removed := t.tree.Size()
	t.tree.Clear()
	t.arena.PopTo(t.base)

	t.metrics.RecordClear(removed)
	t.logger.LogClear(removed)

	return nil
}

// Arena returns the tree's arena. Bytes allocated from it can be inserted
// without being copied.
func (t *Tree) Arena() *arena.Arena {
	return t.arena
}

// Stats returns the arena's allocation statistics.
func (t *Tree) Stats() arena.Stats {
	return t.arena.Stats()
}

// Close releases the arena. Entries obtained from t must not be used
// afterwards. Closing a closed tree returns ErrClosed.
func (t *Tree) Close() error {
	if t == nil {
		return nil
	}
	if t.closed {
		return ErrClosed
	}

	t.logger.LogClose(t.tree.Size(), t.arena.Stats())
	t.arena.Release()
	t.closed = true

	return nil
}
