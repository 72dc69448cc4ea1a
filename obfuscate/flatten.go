package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// Flatten performs a naive form of control-flow flattening: it creates a
// dispatcher block holding a switch over a synthetic state variable, then
// rewrites every eligible block to store the next dispatch ID and jump
// back to the dispatcher. Reading the block list no longer reveals the
// execution order.
//
// Limitations, kept deliberately:
//
//   - Blocks with zero or multiple successors are never selected, so
//     branching and looping structure outside straight chains is left
//     untouched.
//   - The stored next ID is ID+1 (or 0 when the successor is the entry
//     block), a chain-position heuristic that is correct only for a single
//     linear chain of eligible blocks. See the dispatch table construction
//     below before extending eligibility.
type Flatten struct{}

// Name implements kovid.FunctionPass.
func (p *Flatten) Name() string { return "flatten" }

// Run selects eligible blocks and applies the transform to the snapshot.
func (p *Flatten) Run(fn *ir.Function) bool {
	Logger().Debug("complicating", zap.String("func", fn.Name), zap.String("pass", p.Name()))
	return p.Apply(fn, Select(fn, FlattenEligible))
}

// Apply flattens every block in the snapshot. A function with fewer than
// two blocks, an empty snapshot, or a snapshot with no structurally valid
// entries is a no-op with nothing mutated.
func (p *Flatten) Apply(fn *ir.Function, snapshot []*ir.BasicBlock) bool {
	if len(fn.Blocks) < 2 || len(snapshot) == 0 {
		return false
	}

	// Validate terminator shapes up front so that a snapshot with no
	// usable blocks leaves no partial mutation (no orphan state variable
	// or empty dispatcher).
	eligible := snapshot[:0:0]
	for _, bb := range snapshot {
		jump, ok := bb.Term.(*ir.Jump)
		if !ok {
			Logger().Debug("skipping block: terminator no longer unconditional",
				zap.String("func", fn.Name), zap.String("block", bb.Name))
			continue
		}
		if jump.Target == nil {
			Logger().Debug("skipping block: terminator has no successor",
				zap.String("func", fn.Name), zap.String("block", bb.Name))
			continue
		}
		eligible = append(eligible, bb)
	}
	if len(eligible) == 0 {
		return false
	}

	entry := fn.Entry()

	// State variable: allocated and zeroed in the entry block, before the
	// entry terminator, so the entry body runs unchanged before the first
	// dispatch decision. ID 0 means "re-enter via entry".
	cell := fn.UniqueName("blockID")
	entry.Append(
		ir.Instruction{Op: ir.OpAlloca, Dest: cell},
		ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Const{Int: 0}, ir.Ref{Name: cell}}},
	)

	// Dispatcher: placed right after entry, loads the state variable and
	// switches over it. The default case targets entry.
	dispatcher := fn.InsertBlockAfter(entry, fn.UniqueName("dispatcher"))
	idx := fn.UniqueName(cell + ".load")
	dispatcher.Append(ir.Instruction{Op: ir.OpLoad, Dest: idx, Args: []ir.Value{ir.Ref{Name: cell}}})
	sw := &ir.Switch{Index: ir.Ref{Name: idx}, Default: entry}
	dispatcher.SetTerm(sw)

	// IDs are assigned 1..N in discovery order, which follows the
	// original block sequence order of the snapshot.
	nextID := int64(1)
	for _, bb := range eligible {
		thisID := nextID
		nextID++
		sw.AddCase(thisID, bb)

		succ := bb.Term.(*ir.Jump).Target

		// The naive chain-position heuristic: the block after this one in
		// the chain got (or will get) ID+1; a jump back to entry resets
		// the state to 0.
		storeID := thisID + 1
		if succ == entry {
			storeID = 0
		}

		bb.Append(ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Const{Int: storeID}, ir.Ref{Name: cell}}})
		bb.SetTerm(&ir.Jump{Target: dispatcher})
	}

	Logger().Debug("flattened",
		zap.String("func", fn.Name),
		zap.Int("blocks", len(eligible)),
		zap.String("state", cell))
	return true
}
