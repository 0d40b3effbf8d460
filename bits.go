package trie

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Unsigned is the set of key types the trie can index. A root slot exists
// for every bit position a key of this width can have set, so the width of
// K fixes the number of root slots (see Head).
type Unsigned = constraints.Unsigned

// keyBits returns the width, in bits, of K.
func keyBits[K Unsigned]() uint {
	var allOnes K = ^K(0)
	return uint(bits.Len64(uint64(allOnes)))
}

// highestSetBit returns the index (0 = least significant) of the most
// significant set bit of k, or 0 if k is zero — key 0 has no set bit of its
// own, and lives exclusively in root slot 0 alongside keys whose highest
// set bit is bit 0 (i.e. the key 1).
func highestSetBit[K Unsigned](k K) uint {
	v := uint64(k)
	if v == 0 {
		return 0
	}
	return uint(bits.Len64(v)) - 1
}
