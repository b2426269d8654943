// Package partmap provide a partitioned map.
package partmap

import (
	"hash/maphash"
)

// Hasher is the constraint of partitioned map keys.
type Hasher interface {
	comparable
	Hash(seed maphash.Seed) uint64
}

type part[K Hasher, V any] struct {
	m map[K]V
}

// Map is a map split into numPart maps by key hash, keeping the single
// maps small while the search grows. It is not safe for concurrent use.
type Map[K Hasher, V any] struct {
	numPart uint64
	seed    maphash.Seed
	parts   []*part[K, V]
	size    int
}

// New returns a map with numPart partitions.
func New[K Hasher, V any](numPart uint64) *Map[K, V] {
	if numPart == 0 {
		numPart = 1
	}
	pm := &Map[K, V]{
		numPart: numPart,
		seed:    maphash.MakeSeed(),
		parts:   make([]*part[K, V], numPart),
	}
	for i := range pm.parts {
		pm.parts[i] = &part[K, V]{m: make(map[K]V)}
	}
	return pm
}

func (pm *Map[K, V]) part(k K) *part[K, V] { return pm.parts[k.Hash(pm.seed)%pm.numPart] }

// Load returns the value stored for k.
func (pm *Map[K, V]) Load(k K) (V, bool) {
	v, ok := pm.part(k).m[k]
	return v, ok
}

// Store stores v for k if k is not yet present and reports whether it did.
func (pm *Map[K, V]) Store(k K, v V) bool {
	part := pm.part(k)
	if _, ok := part.m[k]; ok {
		return false
	}
	part.m[k] = v
	pm.size++
	return true
}

// Contains returns true if k is present.
func (pm *Map[K, V]) Contains(k K) bool {
	_, ok := pm.part(k).m[k]
	return ok
}

// Size returns the number of stored keys.
func (pm *Map[K, V]) Size() int { return pm.size }

// NumPart returns the number of partitions.
func (pm *Map[K, V]) NumPart() int { return int(pm.numPart) }
