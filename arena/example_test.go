package arena_test

import (
	"fmt"

	"github.com/hupe1980/arenatree/arena"
)

func Example() {
	a := arena.New(1 << 20)
	defer a.Release()

	_, greeting := a.Alloc(13)
	copy(greeting, "Hello, World!")

	mark := a.Pos()
	a.Alloc(4 * a.PageSize())
	fmt.Println("committed pages:", a.Committed()/a.PageSize())

	a.PopTo(mark)
	fmt.Println("pos after rewind:", a.Pos())
	fmt.Println(string(greeting))

	// Output:
	// committed pages: 5
	// pos after rewind: 13
	// Hello, World!
}

func ExamplePush() {
	type point struct{ X, Y int64 }

	a := arena.New(1 << 20)
	defer a.Release()

	off, p := arena.Push[point](a)
	p.X, p.Y = 3, 4

	q := arena.At[point](a, off)
	fmt.Println(q.X, q.Y)

	// Output:
	// 3 4
}
