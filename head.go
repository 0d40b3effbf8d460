package trie

// NobbleMode selects which child side Erase prefers when it has to descend
// into a removed item's subtree to find a replacement with no descendants
// of its own (see Index.Erase). It is fixed at construction time, the Go
// equivalent of the source library's compile-time NobbleDir template
// parameter.
type NobbleMode int8

const (
	// NobbleZeros always prefers the left (bit-0) child first.
	NobbleZeros NobbleMode = -1
	// NobbleEqual alternates between children across successive removals
	// that must descend for a replacement, flipping a bit in the head each
	// time.
	NobbleEqual NobbleMode = 0
	// NobbleOnes always prefers the right (bit-1) child first.
	NobbleOnes NobbleMode = 1
)

// BranchLocker lets a concurrent caller hook branch-granular locking into
// the engine. Insert, Erase and Find (and through Find: Contains, Count,
// At and EraseKey) call LockBranch for the key's branch before touching any
// item and UnlockBranch when they are done, passing back whatever token
// LockBranch returned. Min, Max, Next, Prev, CloseFind, NearestFind and
// the iterator take no branch lock. The default Head
// has no locker installed and the calls are skipped entirely, matching
// spec's no-op-by-default concurrency stance.
type BranchLocker[K Unsigned] interface {
	LockBranch(key K, exclusive bool, rootSlotHint int) any
	UnlockBranch(token any, exclusive bool)
}

// Head holds everything about an Index that is not part of any one item:
// the root slot array, the item count, the occupancy bitmap, the nobble
// mode, and an optional branch locker.
type Head[K Unsigned, P Item[K, P]] struct {
	children [64]P
	occ      occupancy
	count    uint64

	mode       NobbleMode
	nobbledir  bool // used only when mode == NobbleEqual

	locker BranchLocker[K]
}

// SetLocker installs (or, with nil, removes) a branch locker.
func (h *Head[K, P]) SetLocker(l BranchLocker[K]) { h.locker = l }

func (h *Head[K, P]) lock(k K, exclusive bool, rootSlotHint int) any {
	if h.locker == nil {
		return nil
	}
	return h.locker.LockBranch(k, exclusive, rootSlotHint)
}

func (h *Head[K, P]) unlock(tok any, exclusive bool) {
	if h.locker == nil {
		return
	}
	h.locker.UnlockBranch(tok, exclusive)
}

func (h *Head[K, P]) setChild(i uint, p P) {
	var zero P
	if p == zero {
		h.occ.clear(i)
	} else {
		h.occ.set(i)
	}
	h.children[i] = p
}

// flipNobbleDir toggles the runtime nobble bit used by NobbleEqual mode and
// returns the new value.
func (h *Head[K, P]) flipNobbleDir() bool {
	h.nobbledir = !h.nobbledir
	return h.nobbledir
}
