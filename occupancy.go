package trie

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

// occupancy is a bitmap over the head's root slots, one bit per possible
// highest-set-bit position of K. It lets Min, Max, Next, Prev and the
// iterator skip past empty slots in O(W/64) words instead of testing all W
// slots one at a time, the same role the popcount bitmap plays for branch
// descent in aglyzov-go-ds/veb/set.
type occupancy [1]uint64

func (o *occupancy) set(i uint)   { o[0] |= 1 << i }
func (o *occupancy) clear(i uint) { o[0] &^= 1 << i }

// count returns the number of occupied root slots.
func (o *occupancy) count() uint64 { return uint64(popcount.Count(o[0])) }

// nextSet returns the lowest set bit index >= from, or ok=false if there
// is none.
func (o *occupancy) nextSet(from uint) (idx uint, ok bool) {
	if from >= 64 {
		return 0, false
	}
	word := o[0] >> from
	if word == 0 {
		return 0, false
	}
	return from + uint(bits.TrailingZeros64(word)), true
}

// prevSet returns the highest set bit index strictly below belowExclusive,
// or ok=false if there is none.
func (o *occupancy) prevSet(belowExclusive uint) (idx uint, ok bool) {
	if belowExclusive == 0 {
		return 0, false
	}
	word := o[0]
	if belowExclusive < 64 {
		word &= (uint64(1) << belowExclusive) - 1
	}
	if word == 0 {
		return 0, false
	}
	return uint(bits.Len64(word)) - 1, true
}
