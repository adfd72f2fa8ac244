// Package aggregator implements the multi-way reduction driver: it walks
// the (top, sub) block coordinate space shared by a group of sources,
// asks reduce.Sort{OR,AND,SUB} to bucket each coordinate's argument
// blocks, folds the bucket with reduce.{OR,AND,ANDSUB}, and installs the
// result into a target bitvec.Directory.
package aggregator

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/bmerr"
)

// MaxCap bounds how many sources a single Aggregator call may fold in one
// pass, matching the reference engine's fixed-capacity source list.
const MaxCap = 256

// Aggregator accumulates two groups of sources (group 0 feeds OR/AND,
// group 1 feeds the subtrahend side of AND-SUB) and folds them on demand.
// It holds no target state of its own: CombineOR/CombineAND/CombineANDSUB
// all take the target directory as an argument, so one Aggregator can be
// reused across many reductions.
type Aggregator struct {
	group0 []bitvec.Directory
	group1 []bitvec.Directory
}

// New returns an empty Aggregator.
func New() *Aggregator { return &Aggregator{} }

// Add attaches src to group (0 or 1) and returns the group's new size.
func (a *Aggregator) Add(src bitvec.Directory, group int) (int, error) {
	switch group {
	case 0:
		if len(a.group0) >= MaxCap {
			return len(a.group0), bmerr.NewCapacityExceeded("group0", MaxCap)
		}
		a.group0 = append(a.group0, src)
		return len(a.group0), nil
	case 1:
		if len(a.group1) >= MaxCap {
			return len(a.group1), bmerr.NewCapacityExceeded("group1", MaxCap)
		}
		a.group1 = append(a.group1, src)
		return len(a.group1), nil
	default:
		return 0, bmerr.NewAllocationFailure("aggregator.Add: unknown group", nil)
	}
}

// Reset detaches every source from both groups without releasing the
// backing arrays, so a reused Aggregator avoids reallocating them.
func (a *Aggregator) Reset() {
	a.group0 = a.group0[:0]
	a.group1 = a.group1[:0]
}

// Group0 returns the sources attached for OR/AND reduction.
func (a *Aggregator) Group0() []bitvec.Directory { return a.group0 }

// Group1 returns the sources attached as the AND-SUB subtrahend group.
func (a *Aggregator) Group1() []bitvec.Directory { return a.group1 }

// CombineOR ORs every group-0 source into target.
func (a *Aggregator) CombineOR(target bitvec.Directory) error {
	return CombineOR(target, a.group0)
}

// CombineORStats is CombineOR with block-visit counters recorded into
// stats (which may be nil).
func (a *Aggregator) CombineORStats(target bitvec.Directory, stats *Stats) error {
	return CombineORStats(target, a.group0, stats)
}

// CombineAND ANDs every group-0 source into target.
func (a *Aggregator) CombineAND(target bitvec.Directory) error {
	return CombineAND(target, a.group0)
}

// CombineANDStats is CombineAND with block-visit counters recorded into
// stats (which may be nil).
func (a *Aggregator) CombineANDStats(target bitvec.Directory, stats *Stats) error {
	return CombineANDStats(target, a.group0, stats)
}

// CombineANDSUB computes (AND of group 0) AND-NOT (OR of group 1) into
// target. If any is true, the walk stops at the first non-empty result
// block and the returned bool reports whether one was found.
func (a *Aggregator) CombineANDSUB(target bitvec.Directory, any bool) (bool, error) {
	return CombineANDSUB(target, a.group0, a.group1, any)
}

// FindFirstANDSUB returns the absolute bit position of the first set bit
// of (AND of group 0) AND-NOT (OR of group 1), without materializing a
// target directory.
func (a *Aggregator) FindFirstANDSUB() (uint64, bool) {
	return FindFirstANDSUB(a.group0, a.group1)
}

// ShiftRightAnd shifts target right by one bit globally and ANDs the
// result with mask, in place.
func (a *Aggregator) ShiftRightAnd(target, mask bitvec.Directory) (bool, error) {
	return ShiftRightAnd(target, mask)
}

// CombineShiftRightAND folds group 0 into target via the fused
// shift-then-AND reduction described in ShiftRightAnd, applied across all
// of group 0 in one coordinate sweep with per-source carry state.
func (a *Aggregator) CombineShiftRightAND(target bitvec.Directory, any bool) (bool, error) {
	return CombineShiftRightAND(target, a.group0, any)
}
