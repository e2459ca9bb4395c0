package bst

import (
	"github.com/hupe1980/arenatree/arena"
)

const flagDetached = 1

// blob references bytes stored in the arena.
type blob struct {
	off uint64
	len uint64
}

// node is the in-arena layout of a tree node. It holds no Go pointers:
// children are arena offsets and 0 means none.
type node struct {
	left   uint64
	right  uint64
	key    blob
	val    blob
	height uint64 // of the subtree rooted here
	flags  uint64
}

// header is the in-arena root record of a tree.
type header struct {
	size   uint64
	height uint64
	root   uint64
}

func (t *Tree) node(off uint64) *node {
	return arena.At[node](t.arena, off)
}

// heightOf returns the height of the subtree rooted at off.
func (t *Tree) heightOf(off uint64) uint64 {
	if off == 0 {
		return 0
	}
	return t.node(off).height
}

// fixHeight recomputes the stored height of off from its children and
// reports whether it changed.
func (t *Tree) fixHeight(off uint64) bool {
	n := t.node(off)
	h := 1 + max(t.heightOf(n.left), t.heightOf(n.right))
	if h == n.height {
		return false
	}
	n.height = h
	return true
}

func (t *Tree) hdr() *header {
	return arena.At[header](t.arena, t.hdrOff)
}

func (t *Tree) bytes(b blob) []byte {
	if b.len == 0 {
		return nil
	}
	return t.arena.Bytes(b.off, b.len)
}

// store references b in place when it already lives in the arena and copies
// it into the arena otherwise.
func (t *Tree) store(b []byte) blob {
	if len(b) == 0 {
		return blob{}
	}
	n := uint64(len(b))
	if off, ok := t.arena.Offset(b); ok {
		return blob{off: off, len: n}
	}
	off, dst := t.arena.AllocNonZero(n)
	copy(dst, b)
	return blob{off: off, len: n}
}
