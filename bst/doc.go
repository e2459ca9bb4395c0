// Package bst provides an unbalanced binary search tree whose nodes live in
// an arena.
//
// The tree is an ordered multiset: keys are opaque byte strings ordered by a
// caller-supplied Comparator, and equal keys may be inserted any number of
// times. Equal keys always descend to the right, so among duplicates earlier
// insertions sit closer to the root and in-order traversal yields them in
// insertion order.
//
// Every node is allocated from the arena passed to New and is never freed
// individually. Remove only relinks the tree; the node's bytes stay allocated
// until the arena is rewound or released.
//
// # Entries
//
// Insert, Find and FindAll return Entry values. An Entry is the identity of a
// node: two entries are equal exactly when they refer to the same node. Pass
// an Entry back to Remove to delete that particular duplicate:
//
//	a := arena.New(1 << 20)
//	defer a.Release()
//
//	t := bst.New(a, bst.Lexical)
//	first := t.Insert([]byte("k"), []byte("1"))
//	t.Insert([]byte("k"), []byte("2"))
//	t.Remove(first) // the second "k" stays
//
// Entries are valid until the arena is rewound past the node or released.
//
// # Concurrency
//
// A Tree is not safe for concurrent use.
package bst
