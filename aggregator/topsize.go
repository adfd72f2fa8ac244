package aggregator

import "github.com/shk656461/BitMagic/bitvec"

// ComputeEffectiveTopBlocks is the pure half of target-size harmonization:
// it scans every source's reserved top-directory size and returns the
// largest, without touching target. FindFirstANDSUB uses this half alone,
// since it never materializes a target directory.
func ComputeEffectiveTopBlocks(sources ...bitvec.Directory) int {
	top := 0
	for _, s := range sources {
		if n := s.TopBlockSize(); n > top {
			top = n
		}
	}
	return top
}

// ApplyTargetSize is the mutator half: it initializes target if needed,
// clears whatever it previously held (a reduction always starts from an
// empty target, never folds into stale content left by an earlier call),
// and grows its top directory to at least topBlocks rows, returning the
// resulting size. Every Combine* driver that treats target as pure output
// uses this.
func ApplyTargetSize(target bitvec.Directory, topBlocks int) int {
	if !target.IsInit() {
		target.InitTree()
	}
	target.Clear()
	return target.ReserveTopBlocks(topBlocks)
}

// GrowTargetSize is ApplyTargetSize without the clear: it initializes
// target if needed and grows its top directory to at least topBlocks
// rows, but leaves existing content alone. ShiftRightAnd uses this,
// since its target is also an input operand (target becomes
// (target >> 1) & mask) and clearing it would erase the value being
// shifted.
func GrowTargetSize(target bitvec.Directory, topBlocks int) int {
	if !target.IsInit() {
		target.InitTree()
	}
	return target.ReserveTopBlocks(topBlocks)
}

// EffectiveSubBlockRange scans row i across sources and returns one past
// the highest populated sub-block index, bounding how far a find-first
// scan needs to walk j before giving up on row i.
func EffectiveSubBlockRange(sources []bitvec.Directory, i int) int {
	maxJ := -1
	for _, s := range sources {
		for j := bitvec.SubSize - 1; j > maxJ; j-- {
			if !s.GetBlockPtr(i, j).IsNull() {
				maxJ = j
				break
			}
		}
	}
	return maxJ + 1
}
