package bst

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenatree/arena"
)

// item is the reference model of one entry: duplicates are ordered by
// insertion sequence, which is the order the tree must yield them in.
type item struct {
	key   []byte
	seq   uint64
	entry Entry
}

func itemLess(a, b item) bool {
	if c := bytes.Compare(a.key, b.key); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

type model struct {
	items *btree.BTreeG[item]
	live  []item
	seq   uint64
}

func newModel() *model {
	return &model{items: btree.NewG(8, itemLess)}
}

func (m *model) insert(tr *Tree, key []byte) {
	m.seq++
	it := item{key: key, seq: m.seq}
	it.entry = tr.Insert(key, Uint64Key(m.seq))
	m.items.ReplaceOrInsert(it)
	m.live = append(m.live, it)
}

func (m *model) drop(it item) {
	m.items.Delete(it)
	for i := range m.live {
		if m.live[i].seq == it.seq {
			m.live[i] = m.live[len(m.live)-1]
			m.live = m.live[:len(m.live)-1]
			return
		}
	}
}

// first returns the earliest inserted live item with the given key.
func (m *model) first(key []byte) (item, bool) {
	var out item
	var found bool
	m.items.AscendGreaterOrEqual(item{key: key}, func(it item) bool {
		found = bytes.Equal(it.key, key)
		out = it
		return false
	})
	return out, found
}

func (m *model) check(t *testing.T, tr *Tree) {
	t.Helper()

	require.Equal(t, m.items.Len(), tr.Size())

	var want []uint64
	m.items.Ascend(func(it item) bool {
		want = append(want, it.seq)
		return true
	})

	got := make([]uint64, 0, tr.Size())
	for e := range tr.All() {
		got = append(got, DecodeUint64(e.Value()))
	}
	require.Equal(t, want, got)
}

func TestTree_Model(t *testing.T) {
	a := arena.New(32 << 20)
	defer a.Release()

	tr := New(a, Lexical)
	m := newModel()
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 5000; i++ {
		key := Uint64Key(uint64(rng.Intn(64)))

		switch op := rng.Intn(10); {
		case op < 6:
			m.insert(tr, key)
		case op < 8:
			if len(m.live) == 0 {
				continue
			}
			it := m.live[rng.Intn(len(m.live))]
			got, ok := tr.Remove(it.entry)
			require.True(t, ok)
			require.Equal(t, it.entry, got)
			m.drop(it)
		default:
			want, found := m.first(key)
			got, ok := tr.RemoveKey(key)
			require.Equal(t, found, ok)
			if found {
				require.Equal(t, want.entry, got)
				m.drop(want)
			}
		}

		if i%250 == 0 {
			m.check(t, tr)
			verify(t, tr)

			var n int
			m.items.AscendRange(item{key: key}, item{key: append(bytes.Clone(key), 0)}, func(item) bool {
				n++
				return true
			})
			require.Len(t, tr.FindAll(key), n)
		}
	}

	m.check(t, tr)
	verify(t, tr)
}
