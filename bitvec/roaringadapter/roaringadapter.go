// Package roaringadapter converts between *bitvec.BitVector and
// *roaring.Bitmap, following the LocalBitmap wrapping pattern this
// module's teacher uses for row-filtering bitmaps. It gives the
// aggregation engine an ingest path for Roaring-encoded sources and an
// independent oracle for cross-checking reduction results in tests.
package roaringadapter

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/shk656461/BitMagic/bitvec"
)

// FromRoaring builds a BitVector containing exactly the bits set in rb.
func FromRoaring(rb *roaring.Bitmap) (*bitvec.BitVector, error) {
	v := bitvec.NewBitVector()
	it := rb.Iterator()
	for it.HasNext() {
		if err := v.SetBit(uint64(it.Next())); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ToRoaring materializes a roaring.Bitmap from every set bit of v up to
// (and including) maxBit.
func ToRoaring(v *bitvec.BitVector, maxBit uint64) *roaring.Bitmap {
	rb := roaring.New()
	for pos := uint64(0); pos <= maxBit; pos++ {
		if v.Test(pos) {
			rb.Add(uint32(pos))
		}
	}
	return rb
}
