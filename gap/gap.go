// Package gap implements the GAP (run-length) block representation: a
// block stored as an alternating list of run endpoints instead of 1024
// dense words. This generalizes the byte-run BAH07 scheme (see
// alphazero/gart's bitmap package) to bit-level runs over a full block,
// matching the GAP block used throughout the aggregation engine.
package gap

import (
	"sort"

	"github.com/shk656461/BitMagic/block"
)

// MaxRuns bounds how many runs a GAP block may carry before it stops
// paying off against a Plain block and should be deoptimized.
const MaxRuns = 1024

// Block is a GAP-compressed run-length block. FirstBit is the value (0
// or 1) of bit 0; Ends holds the ascending, inclusive end index of each
// alternating run, with Ends[len(Ends)-1] always equal to block.Bits-1.
type Block struct {
	FirstBit int
	Ends     []uint32
}

// Encode builds a GAP block from a dense block by run-length encoding
// its alternating 0/1 runs.
func Encode(blk *block.Block) *Block {
	g := &Block{}
	first := blk.Test(0)
	if first {
		g.FirstBit = 1
	}
	cur := first
	for i := 1; i < block.Bits; i++ {
		b := blk.Test(i)
		if b != cur {
			g.Ends = append(g.Ends, uint32(i-1))
			cur = b
		}
	}
	g.Ends = append(g.Ends, uint32(block.Bits-1))
	return g
}

// Decode expands g into dst, which is cleared first.
func Decode(g *Block, dst *block.Block) {
	dst.Clear()
	val := g.FirstBit == 1
	start := 0
	for _, end := range g.Ends {
		if val {
			for i := start; i <= int(end); i++ {
				dst.Set(i)
			}
		}
		start = int(end) + 1
		val = !val
	}
}

// decodeNew decodes g into a freshly allocated block.
func decodeNew(g *Block) *block.Block {
	out := block.New()
	Decode(g, out)
	return out
}

// Test reports the value of bit i within the run list via binary search.
func Test(g *Block, i int) bool {
	n := sort.Search(len(g.Ends), func(k int) bool { return int(g.Ends[k]) >= i })
	val := g.FirstBit == 1
	if n%2 == 1 {
		val = !val
	}
	return val
}

// NumRuns returns the number of runs carried by g.
func NumRuns(g *Block) int { return len(g.Ends) }

// ShouldDeoptimize reports whether g has accumulated enough runs that a
// Plain block would now be cheaper to hold and fold against.
func ShouldDeoptimize(g *Block) bool { return len(g.Ends) > MaxRuns }

// IsAllZero reports whether g encodes an all-zero block.
func IsAllZero(g *Block) bool {
	return g.FirstBit == 0 && len(g.Ends) == 1 && g.Ends[0] == uint32(block.Bits-1)
}

// IsAllOnes reports whether g encodes an all-ones block.
func IsAllOnes(g *Block) bool {
	return g.FirstBit == 1 && len(g.Ends) == 1 && g.Ends[0] == uint32(block.Bits-1)
}

// ExpandOrToBitset folds g into dst with a bitwise OR.
func ExpandOrToBitset(dst *block.Block, g *Block) {
	block.Default.Or(dst, decodeNew(g))
}

// ExpandAndToBitset folds g into dst with a digest-pruned bitwise AND.
func ExpandAndToBitset(dst *block.Block, g *Block, digest block.Digest) block.Digest {
	return block.Default.And(dst, decodeNew(g), digest)
}

// ExpandSubToBitset folds g into dst with a digest-pruned bitwise AND-NOT.
func ExpandSubToBitset(dst *block.Block, g *Block, digest block.Digest) block.Digest {
	return block.Default.Sub(dst, decodeNew(g), digest)
}
