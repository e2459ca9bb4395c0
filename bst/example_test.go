package bst_test

import (
	"fmt"

	"github.com/hupe1980/arenatree/arena"
	"github.com/hupe1980/arenatree/bst"
)

func Example() {
	a := arena.New(1 << 20)
	defer a.Release()

	t := bst.New(a, bst.Lexical)
	t.Insert(bst.StringKey("b"), []byte("2"))
	t.Insert(bst.StringKey("a"), []byte("1"))
	t.Insert(bst.StringKey("c"), []byte("3"))

	for e := range t.All() {
		fmt.Printf("%s=%s\n", e.Key(), e.Value())
	}
	fmt.Println("size:", t.Size(), "height:", t.Height())

	// Output:
	// a=1
	// b=2
	// c=3
	// size: 3 height: 2
}

func ExampleTree_Remove() {
	a := arena.New(1 << 20)
	defer a.Release()

	t := bst.New(a, nil)
	first := t.Insert(bst.StringKey("k"), []byte("first"))
	t.Insert(bst.StringKey("k"), []byte("second"))

	t.Remove(first)

	for _, e := range t.FindAll(bst.StringKey("k")) {
		fmt.Println(string(e.Value()))
	}
	fmt.Println(first.Detached())

	// Output:
	// second
	// true
}
