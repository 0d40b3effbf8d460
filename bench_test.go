package trie

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func getKeys(n int) []uint64 {
	keys := make([]uint64, n)
	seen := map[uint64]bool{}
	for i := 0; i < n; {
		k := gofakeit.Uint64()
		if k == 0 || seen[k] {
			continue
		}
		seen[k] = true
		keys[i] = k
		i++
	}
	return keys
}

func BenchmarkIndex_Insert(b *testing.B) {
	keys := getKeys(b.N)
	idx := New[uint64, *item](NobbleEqual)
	items := make([]*item, b.N)
	for i, k := range keys {
		items[i] = newItem(k, i)
	}

	b.ResetTimer()

	for _, it := range items {
		idx.Insert(it)
	}
}

func BenchmarkIndex_Find(b *testing.B) {
	keys := getKeys(b.N)
	idx := New[uint64, *item](NobbleEqual)
	for i, k := range keys {
		idx.Insert(newItem(k, i))
	}

	b.ResetTimer()

	for _, k := range keys {
		idx.Find(k)
	}
}

func BenchmarkIndex_NearestFind(b *testing.B) {
	keys := getKeys(b.N)
	idx := New[uint64, *item](NobbleEqual)
	for i, k := range keys {
		idx.Insert(newItem(k, i))
	}

	b.ResetTimer()

	for _, k := range keys {
		idx.NearestFind(k)
	}
}

func BenchmarkIndex_Erase(b *testing.B) {
	keys := getKeys(b.N)
	idx := New[uint64, *item](NobbleEqual)
	items := make([]*item, b.N)
	for i, k := range keys {
		items[i] = newItem(k, i)
		idx.Insert(items[i])
	}

	b.ResetTimer()

	for _, it := range items {
		idx.Erase(it)
	}
}
