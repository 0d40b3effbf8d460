package trie

// Iterator is a bidirectional cursor over an Index, stepping item-to-item
// the way the source library's iterator type does, but as an explicit Go
// value rather than an operator-overloaded C++ type.
//
// An Iterator becomes invalid exactly when the item it currently names is
// erased from its Index; stepping it afterward is undefined, the same
// contract a C++ iterator gives.
type Iterator[K Unsigned, P Item[K, P]] struct {
	idx  *Index[K, P]
	item P
}

// Begin returns an iterator positioned at the smallest item, or an invalid
// ("end") iterator if the index is empty.
func (t *Index[K, P]) Begin() Iterator[K, P] {
	return Iterator[K, P]{idx: t, item: t.Min()}
}

// End returns an invalid iterator, the same sentinel value stepping past
// the last or before the first item produces.
func (t *Index[K, P]) End() Iterator[K, P] {
	return Iterator[K, P]{idx: t}
}

// IteratorAt returns an iterator positioned at r, which must currently be
// indexed in t.
func (t *Index[K, P]) IteratorAt(r P) Iterator[K, P] {
	return Iterator[K, P]{idx: t, item: r}
}

// Valid reports whether the iterator currently names an item.
func (it Iterator[K, P]) Valid() bool {
	var zero P
	return it.item != zero
}

// Item returns the item the iterator currently names. Valid must be true.
func (it Iterator[K, P]) Item() P {
	var zero P
	if it.item == zero {
		panic("trie: Item on an invalid iterator")
	}
	return it.item
}

// Next advances the iterator and reports whether it is still valid
// afterward.
func (it *Iterator[K, P]) Next() bool {
	var zero P
	if it.item == zero {
		it.item = it.idx.Min()
	} else {
		it.item = it.idx.Next(it.item)
	}
	return it.item != zero
}

// Prev moves the iterator back one step and reports whether it is still
// valid afterward.
func (it *Iterator[K, P]) Prev() bool {
	var zero P
	if it.item == zero {
		it.item = it.idx.Max()
	} else {
		it.item = it.idx.Prev(it.item)
	}
	return it.item != zero
}
