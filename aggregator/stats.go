package aggregator

import "github.com/shk656461/BitMagic/bitvec"

// Stats accumulates per-call block-visit counters. Passing a non-nil
// Stats to a CombineXStats variant makes the golden-block short-circuit
// property observable from outside the package: a golden coordinate
// (every source null, full-ones, or otherwise decided without folding a
// single block) increments GoldenBlocks without touching reduce.OR/AND.
type Stats struct {
	BlocksVisited int
	GoldenBlocks  int
}

func (s *Stats) visit(golden bool) {
	if s == nil {
		return
	}
	s.BlocksVisited++
	if golden {
		s.GoldenBlocks++
	}
}

// CombineORStats is CombineOR with block-visit counters recorded into
// stats (which may be nil).
func CombineORStats(target bitvec.Directory, sources []bitvec.Directory, stats *Stats) error {
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(sources...))
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(sources, i)
		for j := 0; j < rangeJ; j++ {
			golden, err := combineORCellStats(target, sources, i, j)
			if err != nil {
				return err
			}
			stats.visit(golden)
		}
	}
	return nil
}

// CombineANDStats is CombineAND with block-visit counters recorded into
// stats (which may be nil).
func CombineANDStats(target bitvec.Directory, sources []bitvec.Directory, stats *Stats) error {
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(sources...))
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(sources, i)
		for j := 0; j < rangeJ; j++ {
			golden, err := combineANDCellStats(target, sources, i, j)
			if err != nil {
				return err
			}
			stats.visit(golden)
		}
	}
	return nil
}
