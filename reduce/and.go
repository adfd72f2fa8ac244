package reduce

import (
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// AND folds s into dst using a 2-way AND (which computes the initial
// digest) for the first two plain blocks, then digest-pruned single-block
// AND for the rest, then
// any GAP blocks. It returns the resulting digest; a zero digest means
// dst is all zero and any remaining unprocessed args were skipped.
func AND(dst *block.Block, s Sorted) block.Digest {
	switch s.Golden {
	case GoldenAllZero:
		dst.Clear()
		return block.AllZero
	case GoldenAllOnes:
		dst.Fill(true)
		return block.AllSet
	}

	var digest block.Digest
	switch len(s.Plain) {
	case 0:
		dst.Fill(true)
		digest = block.AllSet
	case 1:
		*dst = *s.Plain[0]
		digest = block.CalcDigest(dst)
	default:
		digest = block.Default.And2Way(dst, s.Plain[0], s.Plain[1])
		for _, p := range s.Plain[2:] {
			if digest == block.AllZero {
				break
			}
			digest = block.Default.And(dst, p, digest)
		}
	}

	for _, g := range s.Gaps {
		if digest == block.AllZero {
			break
		}
		digest = gap.ExpandAndToBitset(dst, g, digest)
	}
	return digest
}
