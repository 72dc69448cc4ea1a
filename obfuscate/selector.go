package obfuscate

import "github.com/djolertrk/kovid-obfuscation-passes/ir"

// BlockPredicate decides whether a block is eligible for a strategy.
type BlockPredicate func(fn *ir.Function, bb *ir.BasicBlock) bool

// EdgeSplitEligible is the predicate of the control-flow breaking strategy:
// not the entry block, more than one instruction, and an unconditional
// terminator.
func EdgeSplitEligible(fn *ir.Function, bb *ir.BasicBlock) bool {
	if bb == fn.Entry() || len(bb.Instrs) <= 1 {
		return false
	}
	_, ok := bb.Term.(*ir.Jump)
	return ok
}

// FlattenEligible is the predicate of the flattening strategy: not the
// entry block and an unconditional terminator. Block size does not matter.
func FlattenEligible(fn *ir.Function, bb *ir.BasicBlock) bool {
	if bb == fn.Entry() {
		return false
	}
	_, ok := bb.Term.(*ir.Jump)
	return ok
}

// Select scans the function's block sequence and returns the blocks
// matching pred, in sequence order.
//
// The result is a snapshot: it is taken in full before any mutation
// begins, and the caller must never re-evaluate the predicate against
// blocks created later in the same invocation. That discipline removes
// both iterator invalidation and double-processing. An empty function or
// a predicate matching nothing yields an empty snapshot, not an error.
func Select(fn *ir.Function, pred BlockPredicate) []*ir.BasicBlock {
	var snapshot []*ir.BasicBlock
	for _, bb := range fn.Blocks {
		if pred(fn, bb) {
			snapshot = append(snapshot, bb)
		}
	}
	return snapshot
}
