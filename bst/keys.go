package bst

import (
	"bytes"
	"encoding/binary"
)

// Lexical orders keys byte-wise.
var Lexical Comparator = bytes.Compare

// Reverse returns a comparator that orders keys opposite to cmp.
func Reverse(cmp Comparator) Comparator {
	return func(a, b []byte) int {
		return cmp(b, a)
	}
}

// Uint64Key encodes v so that Lexical order matches numeric order.
func Uint64Key(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

// Int64Key encodes v so that Lexical order matches numeric order.
func Int64Key(v int64) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(v)^(1<<63)) //nolint:gosec // sign flip
}

// StringKey returns s as a key.
func StringKey(s string) []byte {
	return []byte(s)
}

// DecodeUint64 decodes a key produced by Uint64Key.
func DecodeUint64(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// DecodeInt64 decodes a key produced by Int64Key.
func DecodeInt64(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key) ^ (1 << 63)) //nolint:gosec // sign flip
}
