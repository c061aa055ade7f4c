package ir

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Object comparison is insensitive to key order.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports deep structural equality: same type, same scalar value
// (numbers compare across text and machine representations), same array
// elements in order, same object key set and values in any key order.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Float64 != nil && b.Float64 != nil {
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	// Mixed or text-only representations fall back to canonical text.
	return strings.Compare(a.NumberText(), b.NumberText())
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	mapA := ToMap(a)
	mapB := ToMap(b)
	keysA := slices.Sorted(maps.Keys(mapA))
	keysB := slices.Sorted(maps.Keys(mapB))
	minLen := min(len(keysA), len(keysB))

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(keysA[i], keysB[i]); c != 0 {
			return c
		}
		if c := Compare(mapA[keysA[i]], mapB[keysB[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(keysA), len(keysB))
}
