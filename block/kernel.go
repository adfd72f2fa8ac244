package block

import "math/bits"

// Kernel is the block-kernel interface the aggregator core folds blocks
// through. A single Default implementation is provided; callers embedding
// this module into a SIMD-accelerated host can supply their own Kernel.
type Kernel interface {
	Copy(dst, src *Block)
	Set(dst *Block, allOnes bool)
	Or(dst, a *Block) (allOnes bool)
	Or3Way(dst, a, b *Block) (allOnes bool)
	Or5Way(dst, a, b, c, d *Block) (allOnes bool)
	And2Way(dst, a, b *Block) Digest
	And(dst, a *Block, digest Digest) Digest
	Sub(dst, a *Block, digest Digest) Digest
	CalcDigest(blk *Block) Digest
	UpdateDigest(blk *Block, digest Digest) Digest
	IsAllZero(blk *Block) bool
	IsAllOnes(blk *Block) bool
	FindFirst(blk *Block) (idx int, ok bool)
	ShiftRight1(blk *Block, carryIn uint64) (acc, carryOut uint64)
	ShiftRight1And(blk, arg *Block, carryIn uint64) (acc, carryOut uint64)
}

// Default is the generic (non-SIMD) Kernel implementation.
var Default Kernel = defaultKernel{}

type defaultKernel struct{}

func (defaultKernel) Copy(dst, src *Block) { *dst = *src }

func (defaultKernel) Set(dst *Block, allOnes bool) { dst.Fill(allOnes) }

func (defaultKernel) Or(dst, a *Block) bool {
	orWords(dst[:], a[:])
	return wordsAllOnes(dst[:])
}

// Or3Way folds two additional blocks into dst in one pass: dst |= a | b.
func (defaultKernel) Or3Way(dst, a, b *Block) bool {
	i := 0
	for ; i+4 <= Words; i += 4 {
		dst[i] |= a[i] | b[i]
		dst[i+1] |= a[i+1] | b[i+1]
		dst[i+2] |= a[i+2] | b[i+2]
		dst[i+3] |= a[i+3] | b[i+3]
	}
	for ; i < Words; i++ {
		dst[i] |= a[i] | b[i]
	}
	return wordsAllOnes(dst[:])
}

// Or5Way folds four additional blocks into dst in one pass.
func (defaultKernel) Or5Way(dst, a, b, c, d *Block) bool {
	i := 0
	for ; i+4 <= Words; i += 4 {
		dst[i] |= a[i] | b[i] | c[i] | d[i]
		dst[i+1] |= a[i+1] | b[i+1] | c[i+1] | d[i+1]
		dst[i+2] |= a[i+2] | b[i+2] | c[i+2] | d[i+2]
		dst[i+3] |= a[i+3] | b[i+3] | c[i+3] | d[i+3]
	}
	for ; i < Words; i++ {
		dst[i] |= a[i] | b[i] | c[i] | d[i]
	}
	return wordsAllOnes(dst[:])
}

func (defaultKernel) And2Way(dst, a, b *Block) Digest {
	var d Digest
	for region := 0; region < 64; region++ {
		start := region * WordsPerRegion
		var acc uint64
		for w := start; w < start+WordsPerRegion; w++ {
			v := a[w] & b[w]
			dst[w] = v
			acc |= v
		}
		if acc != 0 {
			d |= Digest(1) << uint(region)
		}
	}
	return d
}

// And is digest-pruned: only regions whose digest bit is set are touched,
// since all other regions are already known to be all-zero.
func (defaultKernel) And(dst, a *Block, digest Digest) Digest {
	d := digest
	for region := 0; region < 64; region++ {
		bit := Digest(1) << uint(region)
		if d&bit == 0 {
			continue
		}
		start := region * WordsPerRegion
		var acc uint64
		for w := start; w < start+WordsPerRegion; w++ {
			v := dst[w] & a[w]
			dst[w] = v
			acc |= v
		}
		if acc == 0 {
			d &^= bit
		}
	}
	return d
}

// Sub is digest-pruned dst &^= a, symmetric to And.
func (defaultKernel) Sub(dst, a *Block, digest Digest) Digest {
	d := digest
	for region := 0; region < 64; region++ {
		bit := Digest(1) << uint(region)
		if d&bit == 0 {
			continue
		}
		start := region * WordsPerRegion
		var acc uint64
		for w := start; w < start+WordsPerRegion; w++ {
			v := dst[w] &^ a[w]
			dst[w] = v
			acc |= v
		}
		if acc == 0 {
			d &^= bit
		}
	}
	return d
}

func (defaultKernel) CalcDigest(blk *Block) Digest { return CalcDigest(blk) }

func (defaultKernel) UpdateDigest(blk *Block, digest Digest) Digest {
	return UpdateDigest(blk, digest)
}

func (defaultKernel) IsAllZero(blk *Block) bool { return wordsAllZero(blk[:]) }

func (defaultKernel) IsAllOnes(blk *Block) bool { return wordsAllOnes(blk[:]) }

func (defaultKernel) FindFirst(blk *Block) (int, bool) {
	for i, w := range blk {
		if w != 0 {
			return i*WordBits + bits.TrailingZeros64(w), true
		}
	}
	return 0, false
}

// ShiftRight1 shifts every bit of blk up by one position (bit p becomes
// bit p+1), feeding carryIn into bit 0 and returning the bit shifted out
// of the top of the block as carryOut. acc is nonzero iff the result is
// non-empty.
func (defaultKernel) ShiftRight1(blk *Block, carryIn uint64) (acc, carryOut uint64) {
	carry := carryIn & 1
	for i := 0; i < Words; i++ {
		w := blk[i]
		blk[i] = (w << 1) | carry
		carry = w >> 63
	}
	carryOut = carry
	if !wordsAllZero(blk[:]) {
		acc = 1
	}
	return
}

// ShiftRight1And fuses ShiftRight1 with an AND against arg in a single pass.
func (defaultKernel) ShiftRight1And(blk, arg *Block, carryIn uint64) (acc, carryOut uint64) {
	carry := carryIn & 1
	for i := 0; i < Words; i++ {
		w := blk[i]
		shifted := (w << 1) | carry
		carry = w >> 63
		v := shifted & arg[i]
		blk[i] = v
		if v != 0 {
			acc = 1
		}
	}
	carryOut = carry
	return
}

// Popcount returns the number of set bits in blk.
func Popcount(blk *Block) int { return popcountWords(blk[:]) }
