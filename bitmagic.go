// Package bitmagic is the public façade over the multi-way bit-vector
// aggregation engine: an Aggregator that OR/AND/AND-SUB/SHIFT-RIGHT-AND
// reduces many sparse compressed bit-vectors in a single block-aligned
// pass, plus the BitVector container those sources are built from.
package bitmagic

import (
	"context"
	"time"

	"github.com/shk656461/BitMagic/aggregator"
	"github.com/shk656461/BitMagic/bitvec"
)

// Directory is the source/target contract every reduction folds over.
type Directory = bitvec.Directory

// BitVector is a bit-addressable container backing a Directory.
type BitVector = bitvec.BitVector

// NewBitVector returns an empty, ready-to-use BitVector.
func NewBitVector() *BitVector { return bitvec.NewBitVector() }

// Aggregator accumulates two groups of sources and folds them into a
// target Directory via OR, AND, AND-SUB, or SHIFT-RIGHT-AND, with
// logging and metrics wired around every call.
type Aggregator struct {
	opts options
	core *aggregator.Aggregator
}

// New returns an Aggregator configured by the given options.
func New(optFns ...Option) *Aggregator {
	o := applyOptions(optFns)
	var core *aggregator.Aggregator
	if o.pool != nil {
		core, _ = o.pool.TryAcquire()
	}
	if core == nil {
		core = aggregator.New()
	}
	return &Aggregator{opts: o, core: core}
}

// Close returns the Aggregator's underlying *aggregator.Aggregator to its
// pool, if one was configured via WithPool. A pool-less Aggregator needs
// no closing.
func (a *Aggregator) Close() {
	if a.opts.pool != nil {
		a.opts.pool.Release(a.core)
	}
}

// Add attaches src to group (0 or 1).
func (a *Aggregator) Add(src Directory, group int) (int, error) {
	return a.core.Add(src, group)
}

// Reset detaches every source from both groups.
func (a *Aggregator) Reset() { a.core.Reset() }

// CombineOR ORs every group-0 source into target.
func (a *Aggregator) CombineOR(ctx context.Context, target Directory) error {
	logger := a.opts.logger.WithOp("OR")
	start := time.Now()
	stats := &aggregator.Stats{}
	err := a.core.CombineORStats(target, stats)
	elapsed := time.Since(start)
	logger.LogReduction(ctx, "OR", len(a.core.Group0()), elapsed, err)
	a.opts.metricsCollector.RecordReduction("OR", len(a.core.Group0()), stats.BlocksVisited, stats.GoldenBlocks, elapsed, err)
	return err
}

// CombineAND ANDs every group-0 source into target.
func (a *Aggregator) CombineAND(ctx context.Context, target Directory) error {
	logger := a.opts.logger.WithOp("AND")
	start := time.Now()
	stats := &aggregator.Stats{}
	err := a.core.CombineANDStats(target, stats)
	elapsed := time.Since(start)
	logger.LogReduction(ctx, "AND", len(a.core.Group0()), elapsed, err)
	a.opts.metricsCollector.RecordReduction("AND", len(a.core.Group0()), stats.BlocksVisited, stats.GoldenBlocks, elapsed, err)
	return err
}

// CombineANDSUB computes (AND of group 0) AND-NOT (OR of group 1) into
// target. If any is true, returns as soon as the first non-empty result
// block is found.
func (a *Aggregator) CombineANDSUB(ctx context.Context, target Directory, any bool) (bool, error) {
	logger := a.opts.logger.WithOp("AND-SUB")
	start := time.Now()
	found, err := a.core.CombineANDSUB(target, any)
	elapsed := time.Since(start)
	sources := len(a.core.Group0()) + len(a.core.Group1())
	logger.LogReduction(ctx, "AND-SUB", sources, elapsed, err)
	a.opts.metricsCollector.RecordReduction("AND-SUB", sources, 0, 0, elapsed, err)
	return found, err
}

// FindFirstANDSUB returns the absolute bit position of the first set bit
// of (AND of group 0) AND-NOT (OR of group 1), without a target.
func (a *Aggregator) FindFirstANDSUB(ctx context.Context) (uint64, bool) {
	logger := a.opts.logger.WithOp("FIND-FIRST-AND-SUB")
	start := time.Now()
	idx, ok := a.core.FindFirstANDSUB()
	elapsed := time.Since(start)
	sources := len(a.core.Group0()) + len(a.core.Group1())
	logger.LogReduction(ctx, "FIND-FIRST-AND-SUB", sources, elapsed, nil)
	a.opts.metricsCollector.RecordReduction("FIND-FIRST-AND-SUB", sources, 0, 0, elapsed, nil)
	return idx, ok
}

// CombineShiftRightAND folds group 0 into target via the fused
// shift-then-AND reduction, carrying per-source state across the whole
// coordinate sweep.
func (a *Aggregator) CombineShiftRightAND(ctx context.Context, target Directory, any bool) (bool, error) {
	logger := a.opts.logger.WithOp("SHIFT-RIGHT-AND")
	start := time.Now()
	found, err := a.core.CombineShiftRightAND(target, any)
	elapsed := time.Since(start)
	logger.LogReduction(ctx, "SHIFT-RIGHT-AND", len(a.core.Group0()), elapsed, err)
	a.opts.metricsCollector.RecordReduction("SHIFT-RIGHT-AND", len(a.core.Group0()), 0, 0, elapsed, err)
	return found, err
}
