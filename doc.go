// Package arenatree provides an ordered multiset of byte-string keys whose
// nodes live in a virtual-memory arena.
//
// The building blocks are usable on their own:
//
//   - arena: a linear allocator over one reserved address range. Pages are
//     committed lazily as the allocation position grows and decommitted when
//     it is rewound.
//   - bst: an unbalanced binary search tree allocated from an arena. Equal
//     keys are kept in insertion order and can be removed individually.
//   - resource: a memory budget and worker/ops limits that can be shared by
//     many arenas.
//
// This package ties them together: a Tree owns its arena, reports operations
// to a MetricsCollector and a structured Logger, and turns absence into
// errors.
//
// # Quick Start
//
//	t, err := arenatree.New(bst.Lexical, arenatree.WithCapacity(16<<20))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
//	t.Insert([]byte("b"), []byte("2"))
//	t.Insert([]byte("a"), []byte("1"))
//
//	e, err := t.Find([]byte("a"))
//	if errors.Is(err, arenatree.ErrNotFound) {
//	    // ...
//	}
//	fmt.Println(string(e.Value()))
//
// # Memory
//
// Nodes, keys and values are written into the arena and never freed
// individually. Remove unlinks a node but its bytes stay allocated until the
// Tree is closed. Keys and values passed to Insert are copied unless they
// already point into the tree's arena:
//
//	_, buf := t.Arena().Alloc(5)
//	copy(buf, "hello")
//	t.Insert([]byte("greeting"), buf) // value is referenced, not copied
//
// Share one resource.Controller between trees to cap the memory all of them
// commit together:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	t1, _ := arenatree.New(nil, arenatree.WithResourceController(rc))
//	t2, _ := arenatree.New(nil, arenatree.WithResourceController(rc))
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Use one Tree per goroutine.
package arenatree
