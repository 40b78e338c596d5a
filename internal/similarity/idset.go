// Package similarity implements the five scalar measures the engine scores
// file pairs with, plus the weighted composite that combines them.
package similarity

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
)

// IDSet is a compact set of strings, interned to 32-bit ids via xxhash and
// stored in a roaring bitmap. Because the hash is deterministic, two IDSets
// built independently (e.g. by different Stage A workers) agree on the id
// for the same string without any shared interning table.
type IDSet struct {
	bm *roaring.Bitmap
}

// NewIDSet builds an IDSet from a slice of strings; duplicates collapse.
func NewIDSet(items []string) *IDSet {
	bm := roaring.New()
	for _, it := range items {
		bm.Add(internID(it))
	}
	return &IDSet{bm: bm}
}

func internID(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// Len reports the set's cardinality.
func (s *IDSet) Len() uint64 {
	if s == nil || s.bm == nil {
		return 0
	}
	return s.bm.GetCardinality()
}

// IsEmpty reports whether the set has no members.
func (s *IDSet) IsEmpty() bool {
	return s.Len() == 0
}
