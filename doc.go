// Package trie implements an intrusive, non-allocating binary trie over
// unsigned integer keys, indexed from the most significant set bit down.
//
// Items are not owned or allocated by the index: callers embed a Links
// value in their own struct and hand the index a pointer to it through the
// Item interface. Insert, Erase, Find and the ordered-traversal operations
// only ever follow pointers the caller already owns; the index itself
// never calls make, new, or append on the caller's behalf.
//
// The trie is organized the way github.com/aglyzov/go-ds's critbit
// packages organize byte strings, generalized from a 2-ary crit-bit split
// on the first differing byte to a 1-bit-per-level split tested from the
// key's highest set bit down to its lowest, the way the nedtries family of
// C++ libraries this package's algorithms are ported from does it.
package trie
