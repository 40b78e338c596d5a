package similarity

import "github.com/RoaringBitmap/roaring/v2"

// Jaccard computes |A∩B| / |A∪B|, with jaccard(∅,∅)=1 and jaccard(A,∅)=0
// for nonempty A.
func Jaccard(a, b *IDSet) float64 {
	if a.IsEmpty() && b.IsEmpty() {
		return 1.0
	}
	inter := roaring.And(a.bm, b.bm).GetCardinality()
	union := roaring.Or(a.bm, b.bm).GetCardinality()
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}
