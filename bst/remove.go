package bst

import "github.com/hupe1980/arenatree/internal/pool"

// Remove unlinks the node identified by e and returns it.
//
// The search descends by e's key and, at every node with an equal key,
// compares node identity. Other duplicates of the key are left in place.
// It returns false if e does not belong to the tree or was already removed.
//
// The node's memory stays allocated in the arena.
func (t *Tree) Remove(e Entry) (Entry, bool) {
	if e.tree != t || e.off == 0 {
		return Entry{}, false
	}
	if t.node(e.off).flags&flagDetached != 0 {
		return Entry{}, false
	}
	return t.remove(e.Key(), e.off)
}

// RemoveKey unlinks the shallowest entry whose key equals key, which is the
// entry Find returns, and returns it.
//
// When the key has duplicates this is the earliest inserted one still in the
// tree. Use Remove to delete a specific duplicate.
func (t *Tree) RemoveKey(key []byte) (Entry, bool) {
	return t.remove(key, 0)
}

// remove deletes the first node on key's search path that compares equal to
// key and, if id is non-zero, is the node at offset id.
func (t *Tree) remove(key []byte, id uint64) (Entry, bool) {
	sp := pool.GetStack()
	path := *sp
	defer func() {
		*sp = path
		pool.PutStack(sp)
	}()

	cur := t.hdr().root
	for cur != 0 {
		n := t.node(cur)
		c := t.cmp(key, t.bytes(n.key))
		if c == 0 && (id == 0 || id == cur) {
			break
		}
		path = append(path, cur)
		if c < 0 {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	if cur == 0 {
		return Entry{}, false
	}

	path = t.unlink(path, cur)
	return Entry{tree: t, off: cur}, true
}

// unlink detaches off, whose ancestors from the root down are path, and
// recomputes the heights of every node whose subtree changed. It returns
// path so the caller can hand the grown stack back to the pool.
func (t *Tree) unlink(path []uint64, off uint64) []uint64 {
	n := t.node(off)

	var parent uint64
	if len(path) > 0 {
		parent = path[len(path)-1]
	}

	var repl uint64
	switch {
	case n.left == 0:
		repl = n.right
	case n.right == 0:
		repl = n.left
	default:
		// Promote the in-order successor, the minimum of the right subtree.
		// It takes off's place on the path, followed by the nodes passed on
		// the way down to it.
		path = append(path, 0)
		at := len(path) - 1

		sp := off
		s := n.right
		for t.node(s).left != 0 {
			sp = s
			path = append(path, s)
			s = t.node(s).left
		}
		path[at] = s

		sn := t.node(s)
		if sp != off {
			t.node(sp).left = sn.right
			sn.right = n.right
		}
		sn.left = n.left
		repl = s
	}

	h := t.hdr()
	switch {
	case parent == 0:
		h.root = repl
	case t.node(parent).left == off:
		t.node(parent).left = repl
	default:
		t.node(parent).right = repl
	}

	n.left = 0
	n.right = 0
	n.flags |= flagDetached

	for i := len(path) - 1; i >= 0; i-- {
		t.fixHeight(path[i])
	}

	h.size--
	h.height = t.heightOf(h.root)
	return path
}
