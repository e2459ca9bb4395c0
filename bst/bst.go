package bst

import (
	"iter"

	"github.com/hupe1980/arenatree/arena"
	"github.com/hupe1980/arenatree/internal/pool"
)

// Comparator defines a total order over keys. It returns a negative number
// when a < b, zero when a == b and a positive number when a > b.
type Comparator func(a, b []byte) int

// Tree is an arena-backed binary search tree that allows duplicate keys.
// Not thread-safe.
type Tree struct {
	arena  *arena.Arena
	cmp    Comparator
	hdrOff uint64
}

// New creates an empty tree whose nodes are allocated from a.
// If cmp is nil, keys are ordered lexicographically.
//
// The tree's root record is allocated from a immediately, so offsets of
// nodes inserted later are never zero.
func New(a *arena.Arena, cmp Comparator) *Tree {
	if cmp == nil {
		cmp = Lexical
	}
	off, _ := arena.Push[header](a)
	return &Tree{
		arena:  a,
		cmp:    cmp,
		hdrOff: off,
	}
}

// Arena returns the arena the tree allocates from.
func (t *Tree) Arena() *arena.Arena {
	return t.arena
}

// Size returns the number of entries in the tree.
func (t *Tree) Size() int {
	return int(t.hdr().size) //nolint:gosec // bounded by arena capacity
}

// Height returns the number of nodes on the longest root-to-leaf path.
// An empty tree has height 0.
func (t *Tree) Height() int {
	return int(t.hdr().height) //nolint:gosec // bounded by arena capacity
}

// Insert adds a key/value pair and returns its entry.
//
// key and value are copied into the arena unless they already point into it.
// A key equal to an existing one is placed in that node's right subtree.
func (t *Tree) Insert(key, value []byte) Entry {
	k := t.store(key)
	v := t.store(value)

	off, n := arena.Push[node](t.arena)
	n.key = k
	n.val = v
	n.height = 1

	sp := pool.GetStack()
	path := *sp
	defer func() {
		*sp = path
		pool.PutStack(sp)
	}()

	h := t.hdr()
	if h.root == 0 {
		h.root = off
	} else {
		cur := h.root
		for {
			path = append(path, cur)
			c := t.node(cur)
			if t.cmp(key, t.bytes(c.key)) < 0 {
				if c.left == 0 {
					c.left = off
					break
				}
				cur = c.left
			} else {
				if c.right == 0 {
					c.right = off
					break
				}
				cur = c.right
			}
		}
	}

	// Heights only grow along the insertion path; an unchanged ancestor
	// leaves everything above it unchanged too.
	for i := len(path) - 1; i >= 0; i-- {
		if !t.fixHeight(path[i]) {
			break
		}
	}

	h.size++
	h.height = t.heightOf(h.root)

	return Entry{tree: t, off: off}
}

// Find returns the shallowest entry whose key equals key.
func (t *Tree) Find(key []byte) (Entry, bool) {
	cur := t.hdr().root
	for cur != 0 {
		n := t.node(cur)
		c := t.cmp(key, t.bytes(n.key))
		if c == 0 {
			return Entry{tree: t, off: cur}, true
		}
		if c < 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return Entry{}, false
}

// FindAll returns every entry whose key equals key, in insertion order.
// It returns nil if there is none.
func (t *Tree) FindAll(key []byte) []Entry {
	var out []Entry

	// All equal keys lie on the search path of key: a node greater than key
	// keeps them in its left subtree, a node less than or equal to key in its
	// right subtree. The path visits them in in-order sequence.
	cur := t.hdr().root
	for cur != 0 {
		n := t.node(cur)
		c := t.cmp(key, t.bytes(n.key))
		if c == 0 {
			out = append(out, Entry{tree: t, off: cur})
		}
		if c < 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return out
}

// Inorder calls visit for every entry in ascending key order. Equal keys are
// visited in insertion order.
func (t *Tree) Inorder(visit func(Entry)) {
	t.walk(func(e Entry) bool {
		visit(e)
		return true
	})
}

// All returns an iterator over all entries in ascending key order.
//
// The tree must not be modified during iteration.
func (t *Tree) All() iter.Seq[Entry] {
	return t.walk
}

// Clear removes all entries. Arena memory is not released.
//
// Clear only resets the root record and does not visit the nodes, so entries
// obtained before the call keep reporting Detached as false. Remove reports
// false for them since they are no longer reachable.
func (t *Tree) Clear() {
	h := t.hdr()
	h.root = 0
	h.size = 0
	h.height = 0
}

func (t *Tree) walk(yield func(Entry) bool) {
	sp := pool.GetStack()
	stack := *sp
	defer func() {
		*sp = stack
		pool.PutStack(sp)
	}()

	cur := t.hdr().root
	for cur != 0 || len(stack) > 0 {
		for cur != 0 {
			stack = append(stack, cur)
			cur = t.node(cur).left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !yield(Entry{tree: t, off: cur}) {
			return
		}
		cur = t.node(cur).right
	}
}
