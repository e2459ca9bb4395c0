package bst

// Entry is a handle to a key/value pair stored in a Tree.
//
// An Entry is comparable and identifies one node: entries returned for two
// equal keys inserted separately are different. The zero Entry is invalid.
type Entry struct {
	tree *Tree
	off  uint64
}

// Valid reports whether e refers to a node.
func (e Entry) Valid() bool {
	return e.tree != nil && e.off != 0
}

// Key returns the entry's key. The slice points into the arena.
func (e Entry) Key() []byte {
	if !e.Valid() {
		return nil
	}
	return e.tree.bytes(e.tree.node(e.off).key)
}

// Value returns the entry's value. The slice points into the arena.
func (e Entry) Value() []byte {
	if !e.Valid() {
		return nil
	}
	return e.tree.bytes(e.tree.node(e.off).val)
}

// Detached reports whether the entry was unlinked by Remove or RemoveKey.
// Entries dropped by Clear are not marked.
func (e Entry) Detached() bool {
	return e.Valid() && e.tree.node(e.off).flags&flagDetached != 0
}

// Offset returns the arena offset of the entry's node.
func (e Entry) Offset() uint64 {
	return e.off
}
