package trie

// Index is the trie engine itself. Callers obtain one with New and never
// copy it by value — every item an Index indexes points back at that
// specific Index's internal state (root slots, ring structure), and a
// byte-for-byte copy of an Index would leave two Index values claiming the
// same items without telling either the items or each other. Index is
// therefore non-copyable by convention: take its address, or better, never
// assign a *Index, always construct and pass one.
type Index[K Unsigned, P Item[K, P]] struct {
	noCopy noCopy
	head   Head[K, P]
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New returns an empty Index. mode fixes how Erase picks a replacement
// when it must descend into a removed item's subtree.
func New[K Unsigned, P Item[K, P]](mode NobbleMode) *Index[K, P] {
	idx := &Index[K, P]{}
	idx.head.mode = mode
	return idx
}

// SetLocker installs a branch locker for concurrent use; see BranchLocker.
func (t *Index[K, P]) SetLocker(l BranchLocker[K]) { t.head.SetLocker(l) }

// Len returns the number of items currently indexed, counting every
// secondary sibling.
func (t *Index[K, P]) Len() uint64 { return t.head.count }

// Empty reports whether the index has no items.
func (t *Index[K, P]) Empty() bool { return t.head.count == 0 }

// MaxSize returns the largest value Len can take.
func (t *Index[K, P]) MaxSize() uint64 { return ^uint64(0) }

// Stats summarizes the item count of the index and how many of its root
// slots are occupied.
type Stats struct {
	Size             uint64
	OccupiedBranches uint64
	MaxBranches      uint64
}

// Stats reports the current size and root-slot occupancy.
func (t *Index[K, P]) Stats() Stats {
	return Stats{
		Size:             t.head.count,
		OccupiedBranches: t.head.occ.count(),
		MaxBranches:      uint64(keyBits[K]()),
	}
}

// Clear detaches the index from every item it holds by zeroing the head.
// It does not touch the items themselves: their link fields keep whatever
// they held. It performs no deallocation since the index never allocated
// anything.
func (t *Index[K, P]) Clear() {
	var zero P
	for i := range t.head.children {
		t.head.children[i] = zero
	}
	t.head.occ = occupancy{}
	t.head.count = 0
	t.head.nobbledir = false
}

// Swap exchanges the entire contents of two indices — root slots, size,
// and, in NobbleEqual mode, the runtime nobble bit — in O(W) without
// touching a single item.
func (t *Index[K, P]) Swap(other *Index[K, P]) {
	t.head.children, other.head.children = other.head.children, t.head.children
	t.head.occ, other.head.occ = other.head.occ, t.head.occ
	t.head.count, other.head.count = other.head.count, t.head.count
	t.head.nobbledir, other.head.nobbledir = other.head.nobbledir, t.head.nobbledir
}

func (t *Index[K, P]) nobbleDir() int {
	switch t.head.mode {
	case NobbleZeros:
		return 0
	case NobbleOnes:
		return 1
	default:
		if t.head.flipNobbleDir() {
			return 1
		}
		return 0
	}
}

// Insert links r into the index under its own key (r.TrieLinks().Key()).
// r must not already be indexed anywhere. Duplicate keys are allowed: r
// joins the key's equivalence ring as a secondary sibling if the key is
// already present. Insert always succeeds unless the index is already at
// MaxSize, in which case it returns (zero, false) and leaves r untouched.
func (t *Index[K, P]) Insert(r P) (P, bool) {
	var zero P
	if r == zero {
		panic("trie: Insert(nil)")
	}
	if t.head.count == ^uint64(0) {
		return zero, false
	}

	rl := r.TrieLinks()
	k := rl.key
	rl.state = parentSecondary
	rl.parentItem = zero
	rl.child[0], rl.child[1] = zero, zero
	rl.sibling[0], rl.sibling[1] = r, r

	bitidx := highestSetBit(k)
	tok := t.head.lock(k, true, int(bitidx))
	defer t.head.unlock(tok, true)

	node := t.head.children[bitidx]
	if node == zero {
		rl.state = parentRootSlot
		rl.rootSlot = uint8(bitidx)
		t.head.setChild(bitidx, r)
		t.head.count++
		return r, true
	}

	mask := K(1) << bitidx
	for {
		nl := node.TrieLinks()
		if nl.key == k {
			// Splice r into node's ring, immediately after node.
			next := nl.sibling[1]
			nl.sibling[1] = r
			rl.sibling[0] = node
			rl.sibling[1] = next
			next.TrieLinks().sibling[0] = r
			break
		}
		mask >>= 1
		right := k&mask != 0
		child := nl.child[b2i(right)]
		if child == zero {
			rl.state = parentItem
			rl.parentItem = node
			nl.child[b2i(right)] = r
			break
		}
		node = child
	}
	t.head.count++
	return r, true
}

// setParentTo rewires whatever currently points at r (a root slot or a
// parent's child slot) to point at to instead, and marks to primary at
// that position. to may be the zero value, in which case the slot is
// simply cleared.
func (t *Index[K, P]) setParentTo(r, to P) {
	var zero P
	rl := r.TrieLinks()
	if rl.state == parentRootSlot {
		t.head.setChild(uint(rl.rootSlot), to)
		if to != zero {
			tl := to.TrieLinks()
			tl.state = parentRootSlot
			tl.rootSlot = rl.rootSlot
		}
		return
	}
	parent := rl.parentItem
	pl := parent.TrieLinks()
	if pl.child[0] == r {
		pl.child[0] = to
	} else {
		pl.child[1] = to
	}
	if to != zero {
		tl := to.TrieLinks()
		tl.state = parentItem
		tl.parentItem = parent
	}
}

// Erase removes r, which must currently be indexed, from the index. r may
// be primary or a secondary ring member.
func (t *Index[K, P]) Erase(r P) {
	var zero P
	if r == zero {
		panic("trie: Erase(nil)")
	}
	rl := r.TrieLinks()
	tok := t.head.lock(rl.key, true, int(highestSetBit(rl.key)))
	defer t.head.unlock(tok, true)

	if rl.IsSecondary() {
		prev, next := rl.sibling[0], rl.sibling[1]
		prev.TrieLinks().sibling[1] = next
		next.TrieLinks().sibling[0] = prev
		t.head.count--
		return
	}

	if next := rl.sibling[1]; next != r {
		// Hand r's position in the trie to its immediate ring successor,
		// which becomes the new primary.
		prev := rl.sibling[0]
		prev.TrieLinks().sibling[1] = next
		next.TrieLinks().sibling[0] = prev

		nl := next.TrieLinks()
		nl.child[0], nl.child[1] = rl.child[0], rl.child[1]
		if c := nl.child[0]; c != zero {
			cl := c.TrieLinks()
			cl.state = parentItem
			cl.parentItem = next
		}
		if c := nl.child[1]; c != zero {
			cl := c.TrieLinks()
			cl.state = parentItem
			cl.parentItem = next
		}
		t.setParentTo(r, next)
		t.head.count--
		return
	}

	if rl.child[0] == zero && rl.child[1] == zero {
		t.setParentTo(r, zero)
		t.head.count--
		return
	}

	// r has no duplicate-key siblings but has at least one child: promote
	// the no-descendant item reached by repeatedly descending the
	// nobble-preferred side, then the other side, into r's place.
	dir := t.nobbleDir()
	var p P
	if c := rl.child[dir]; c != zero {
		p = c
	} else {
		p = rl.child[1-dir]
	}
	for {
		pl := p.TrieLinks()
		if c := pl.child[dir]; c != zero {
			p = c
			continue
		}
		if c := pl.child[1-dir]; c != zero {
			p = c
			continue
		}
		break
	}

	pl := p.TrieLinks()
	if pl.state == parentRootSlot {
		t.head.setChild(uint(pl.rootSlot), zero)
	} else {
		realParent := pl.parentItem
		rpl := realParent.TrieLinks()
		if rpl.child[0] == p {
			rpl.child[0] = zero
		} else {
			rpl.child[1] = zero
		}
	}

	if c := rl.child[0]; c != zero {
		pl.child[0] = c
		cl := c.TrieLinks()
		cl.state = parentItem
		cl.parentItem = p
	} else {
		pl.child[0] = zero
	}
	if c := rl.child[1]; c != zero {
		pl.child[1] = c
		cl := c.TrieLinks()
		cl.state = parentItem
		cl.parentItem = p
	} else {
		pl.child[1] = zero
	}

	t.setParentTo(r, p)
	t.head.count--
}

// EraseKey removes the primary item stored under k, if any, and reports
// whether it found one. It leaves any duplicate-key siblings indexed,
// promoting one of them to primary.
func (t *Index[K, P]) EraseKey(k K) bool {
	var zero P
	item := t.Find(k)
	if item == zero {
		return false
	}
	t.Erase(item)
	return true
}

// Find returns the primary item stored under k, or the zero value if k is
// not indexed.
func (t *Index[K, P]) Find(k K) P {
	var zero P
	bitidx := highestSetBit(k)
	tok := t.head.lock(k, false, int(bitidx))
	defer t.head.unlock(tok, false)

	node := t.head.children[bitidx]
	mask := K(1) << bitidx
	for node != zero {
		nl := node.TrieLinks()
		if nl.key == k {
			return node
		}
		mask >>= 1
		node = nl.child[b2i(k&mask != 0)]
	}
	return zero
}

// Contains reports whether k is indexed.
func (t *Index[K, P]) Contains(k K) bool {
	var zero P
	return t.Find(k) != zero
}

// Count returns how many items (primary plus secondaries) are stored
// under k.
func (t *Index[K, P]) Count(k K) uint64 {
	item := t.Find(k)
	var zero P
	if item == zero {
		return 0
	}
	n := uint64(1)
	il := item.TrieLinks()
	for s := il.sibling[1]; s != item; s = s.TrieLinks().sibling[1] {
		n++
	}
	return n
}

// At returns the primary item stored under k, panicking if k is absent.
// It is the equivalent of the source library's operator[].
func (t *Index[K, P]) At(k K) P {
	item := t.Find(k)
	var zero P
	if item == zero {
		panic("trie: At: key not present")
	}
	return item
}

func (t *Index[K, P]) branchMin(node P) P {
	var zero P
	for node != zero {
		nl := node.TrieLinks()
		c := nl.child[0]
		if c == zero {
			return node
		}
		node = c
	}
	return zero
}

func (t *Index[K, P]) branchMax(node P) P {
	var zero P
	for node != zero {
		nl := node.TrieLinks()
		c := nl.child[1]
		if c == zero {
			c = nl.child[0]
		}
		if c == zero {
			if tail := nl.sibling[0]; tail != node {
				return tail
			}
			return node
		}
		node = c
	}
	return zero
}

// Min returns the item with the structurally smallest key, or the zero
// value if the index is empty. Within a branch Min always descends
// child(false), the way spec's own design notes resolve the source
// library's ambiguous leftmost-descent implementation; see DESIGN.md for
// why this is "smallest" only approximately, not exactly.
func (t *Index[K, P]) Min() P {
	var zero P
	if t.head.count == 0 {
		return zero
	}
	i, ok := t.head.occ.nextSet(0)
	if !ok {
		return zero
	}
	return t.branchMin(t.head.children[i])
}

// Max returns the item with the structurally largest key, or the zero
// value if the index is empty.
func (t *Index[K, P]) Max() P {
	var zero P
	if t.head.count == 0 {
		return zero
	}
	i, ok := t.head.occ.prevSet(keyBits[K]())
	if !ok {
		return zero
	}
	return t.branchMax(t.head.children[i])
}

// Front and Back are the panicking equivalents of Min/Max, matching the
// source library's front()/back().
func (t *Index[K, P]) Front() P {
	var zero P
	if m := t.Min(); m != zero {
		return m
	}
	panic("trie: Front: index is empty")
}

func (t *Index[K, P]) Back() P {
	var zero P
	if m := t.Max(); m != zero {
		return m
	}
	panic("trie: Back: index is empty")
}

// branchNext returns the structural successor of x within its own branch.
// If the branch is exhausted it instead returns (zero, top) where top is
// the root-slot item of x's branch, so the caller can resume the search in
// the next occupied root slot.
func (t *Index[K, P]) branchNext(x P) (P, P) {
	var zero P
	xl := x.TrieLinks()

	if next := xl.sibling[1]; next != x && !next.TrieLinks().IsPrimary() {
		return next, zero
	}

	r, rl := x, xl
	for !rl.IsPrimary() {
		r = rl.sibling[1]
		rl = r.TrieLinks()
	}

	if c := rl.child[0]; c != zero {
		return c, zero
	}
	if c := rl.child[1]; c != zero {
		return c, zero
	}

	for rl.state == parentItem {
		parent := rl.parentItem
		pl := parent.TrieLinks()
		if pl.child[0] == r && pl.child[1] != zero {
			return pl.child[1], zero
		}
		r, rl = parent, pl
	}
	return zero, r
}

// Next returns the structural successor of x, or the zero value if x is
// the last item. x must currently be indexed.
func (t *Index[K, P]) Next(x P) P {
	var zero P
	if x == zero {
		return zero
	}
	node, top := t.branchNext(x)
	if node != zero {
		return node
	}
	if top == zero {
		return zero
	}
	bitidx := top.TrieLinks().RootSlotBitIndex()
	if i, ok := t.head.occ.nextSet(bitidx + 1); ok {
		return t.head.children[i]
	}
	return zero
}

func (t *Index[K, P]) branchPrev(x P) (P, P) {
	var zero P
	xl := x.TrieLinks()

	if prev := xl.sibling[0]; xl.IsSecondary() && !prev.TrieLinks().IsPrimary() {
		return prev, zero
	}

	r, rl := x, xl
	for !rl.IsPrimary() {
		r = rl.sibling[0]
		rl = r.TrieLinks()
	}
	if r != x {
		// x was the first secondary in its ring; its predecessor is the
		// primary we just walked to.
		return r, zero
	}

	if rl.state == parentItem {
		parent := rl.parentItem
		pl := parent.TrieLinks()
		if pl.child[1] == r && pl.child[0] != zero {
			return t.branchMax(pl.child[0]), zero
		}
		return pl.sibling[0], zero
	}
	return zero, r
}

// Prev returns the structural predecessor of x, or the zero value if x is
// the first item. x must currently be indexed.
func (t *Index[K, P]) Prev(x P) P {
	var zero P
	if x == zero {
		return zero
	}
	node, top := t.branchPrev(x)
	if node != zero {
		return node
	}
	if top == zero {
		return zero
	}
	bitidx := top.TrieLinks().RootSlotBitIndex()
	if i, ok := t.head.occ.prevSet(bitidx); ok {
		return t.branchMax(t.head.children[i])
	}
	return zero
}

// closeFind backs both CloseFind and NearestFind: it descends from k's own
// branch, spending up to rounds refinement steps, tracking the smallest
// item seen so far whose key is >= k, and falls back to the next occupied
// branch above k's when nothing qualifies in k's own branch.
func (t *Index[K, P]) closeFind(k K, rounds uint64) P {
	var zero P
	bitidx := highestSetBit(k)
	node := t.head.children[bitidx]
	if node == zero {
		if i, ok := t.head.occ.nextSet(bitidx + 1); ok {
			return t.branchMin(t.head.children[i])
		}
		return zero
	}

	if best := t.boundedCeiling(node, k, bitidx, rounds); best != zero {
		return best
	}
	if i, ok := t.head.occ.nextSet(bitidx + 1); ok {
		return t.branchMin(t.head.children[i])
	}
	return zero
}

// boundedCeiling returns the smallest key >= k seen while descending node's
// branch, or the zero value if nothing visited qualifies — it never returns
// a node whose key is < k.
func (t *Index[K, P]) boundedCeiling(node P, k K, topbit uint, rounds uint64) P {
	var zero, best P
	mask := K(1) << topbit
	for node != zero {
		nl := node.TrieLinks()
		if nl.key == k {
			return node
		}
		if nl.key > k && (best == zero || nl.key < best.TrieLinks().key) {
			best = node
		}
		if rounds == 0 {
			break
		}
		mask >>= 1
		rounds--
		if k&mask != 0 {
			node = nl.child[1]
		} else {
			if alt := nl.child[1]; alt != zero {
				if m := t.branchMin(alt); best == zero || m.TrieLinks().key < best.TrieLinks().key {
					best = m
				}
			}
			node = nl.child[0]
		}
	}
	return best
}

// CloseFind returns some item with key >= k, not necessarily the smallest
// such item, spending no more than rounds refinement steps beyond
// examining k's own branch root. Its cost is not bounded by rounds alone:
// each refinement step that takes a 0-branch, and the fall-back to the next
// occupied root slot, descend to the leftmost item of a subtree. It never
// backtracks across more than one root-slot boundary.
func (t *Index[K, P]) CloseFind(k K, rounds uint64) P {
	return t.closeFind(k, rounds)
}

// NearestFind returns an item with key >= k, preferring the smallest such
// item, or the zero value if none exists. Unlike CloseFind it never stops
// early: it walks every refinement step available in k's own branch before
// falling back to the next occupied branch, at the cost of an unbounded
// (but O(log N)-typical) number of steps. Because the trie only orders a
// node relative to its immediate children and not its whole subtree (see
// DESIGN.md), the candidate produced when a search bit takes the 0-branch
// is the structurally leftmost item of the sibling 1-subtree, which is an
// approximation of that subtree's true minimum, not a guarantee of it.
func (t *Index[K, P]) NearestFind(k K) P {
	return t.closeFind(k, ^uint64(0))
}
