package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// BreakCFG complicates reverse engineering by injecting extra basic blocks
// and decoy conditional branches. For each eligible block it creates a
// split block that forwards to the old successor, then replaces the
// block's unconditional terminator with a conditional branch whose opaque
// predicate always takes the original edge. The decoy edge exists only in
// the listing; the dynamic trace of executed blocks is unchanged.
//
// A block transformed once is never selected again: its terminator is now
// conditional and fails the eligibility predicate.
type BreakCFG struct{}

// Name implements kovid.FunctionPass.
func (p *BreakCFG) Name() string { return "break-cfg" }

// Run selects eligible blocks and applies the transform to the snapshot.
func (p *BreakCFG) Run(fn *ir.Function) bool {
	Logger().Debug("complicating", zap.String("func", fn.Name), zap.String("pass", p.Name()))
	return p.Apply(fn, Select(fn, EdgeSplitEligible))
}

// Apply transforms every block in the snapshot, skipping blocks whose
// terminator shape no longer matches. It reports whether the function was
// mutated.
func (p *BreakCFG) Apply(fn *ir.Function, snapshot []*ir.BasicBlock) bool {
	changed := false
	for _, bb := range snapshot {
		// Re-validate the shape right before mutating; an earlier
		// mutation in this run may have changed it.
		jump, ok := bb.Term.(*ir.Jump)
		if !ok {
			Logger().Debug("skipping block: terminator no longer unconditional",
				zap.String("func", fn.Name), zap.String("block", bb.Name))
			continue
		}
		succ := jump.Target
		if succ == nil {
			Logger().Debug("skipping block: terminator has no successor",
				zap.String("func", fn.Name), zap.String("block", bb.Name))
			continue
		}

		split := fn.InsertBlockAfter(bb, fn.UniqueName(bb.Name+".split"))
		split.SetTerm(&ir.Jump{Target: succ})

		bb.SetTerm(&ir.CondBr{
			Cond: opaquePredicate(),
			Then: succ,
			Else: split,
		})
		changed = true
	}
	return changed
}

// opaquePredicate builds the branch condition guarding the decoy edge. It
// is invariant: it always evaluates to the value selecting the original
// successor. The literal-constant form is a known weakness of the scheme,
// kept as-is rather than silently strengthened.
func opaquePredicate() ir.Value {
	return ir.Const{Int: 1}
}
