// Package reduce implements the block sorter and per-block reducer: the
// layer that buckets one (i, j) coordinate's argument blocks across many
// sources by representation, then folds them into a single result block.
package reduce

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// Golden reports a reduction outcome decided without folding any block.
type Golden int

const (
	// GoldenNone means the Sorted bucket must actually be folded.
	GoldenNone Golden = iota
	// GoldenAllOnes means the result is definitely an all-ones block.
	GoldenAllOnes
	// GoldenAllZero means the result is definitely an all-zero block.
	GoldenAllZero
)

// Sorted buckets the argument blocks found across sources at one (i, j)
// coordinate into their Plain and Gap representations.
type Sorted struct {
	Plain  []*block.Block
	Gaps   []*gap.Block
	Golden Golden
}

// SortOR buckets sources for an OR reduction. A FullOnes source
// short-circuits immediately: ORing anything with an all-ones block
// yields an all-ones block, so no source needs to be examined further.
func SortOR(sources []bitvec.Directory, i, j int) Sorted {
	var s Sorted
	for _, src := range sources {
		slot := src.GetBlockPtr(i, j)
		switch slot.Kind {
		case bitvec.Null:
			continue
		case bitvec.FullOnes:
			return Sorted{Golden: GoldenAllOnes}
		case bitvec.Plain:
			b, _ := slot.PlainBlock()
			s.Plain = append(s.Plain, b)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			s.Gaps = append(s.Gaps, g)
		}
	}
	return s
}

// SortAND buckets sources for an AND reduction. A Null source
// short-circuits immediately: ANDing anything with an all-zero block
// yields an all-zero block. FullOnes sources are the AND identity and
// are dropped rather than bucketed. If every source turned out to be
// FullOnes (or there were no sources), the result is all ones.
func SortAND(sources []bitvec.Directory, i, j int) Sorted {
	var s Sorted
	for _, src := range sources {
		slot := src.GetBlockPtr(i, j)
		switch slot.Kind {
		case bitvec.Null:
			return Sorted{Golden: GoldenAllZero}
		case bitvec.FullOnes:
			continue
		case bitvec.Plain:
			b, _ := slot.PlainBlock()
			s.Plain = append(s.Plain, b)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			s.Gaps = append(s.Gaps, g)
		}
	}
	if len(s.Plain) == 0 && len(s.Gaps) == 0 {
		s.Golden = GoldenAllOnes
	}
	return s
}

// SortSUB buckets sources for the subtrahend side of an AND-SUB
// reduction. A Null subtrahend source is the SUB identity (subtracting
// nothing) and is dropped. A FullOnes subtrahend source short-circuits
// immediately: subtracting an all-ones block clears everything.
func SortSUB(sources []bitvec.Directory, i, j int) Sorted {
	var s Sorted
	for _, src := range sources {
		slot := src.GetBlockPtr(i, j)
		switch slot.Kind {
		case bitvec.Null:
			continue
		case bitvec.FullOnes:
			return Sorted{Golden: GoldenAllZero}
		case bitvec.Plain:
			b, _ := slot.PlainBlock()
			s.Plain = append(s.Plain, b)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			s.Gaps = append(s.Gaps, g)
		}
	}
	return s
}
