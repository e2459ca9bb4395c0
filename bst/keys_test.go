package bst

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64Key(t *testing.T) {
	vals := []int64{math.MinInt64, -1000, -1, 0, 1, 42, math.MaxInt64}

	for i := 1; i < len(vals); i++ {
		assert.Negative(t, Lexical(Int64Key(vals[i-1]), Int64Key(vals[i])), "%d < %d", vals[i-1], vals[i])
	}
	for _, v := range vals {
		assert.Equal(t, v, DecodeInt64(Int64Key(v)))
	}
}

func TestUint64Key(t *testing.T) {
	assert.Negative(t, Lexical(Uint64Key(255), Uint64Key(256)))
	assert.Equal(t, uint64(math.MaxUint64), DecodeUint64(Uint64Key(math.MaxUint64)))
}

func TestReverse(t *testing.T) {
	rev := Reverse(Lexical)

	assert.Positive(t, rev([]byte("a"), []byte("b")))
	assert.Zero(t, rev([]byte("a"), []byte("a")))
	assert.Equal(t, []byte("x"), StringKey("x"))
}
