package ir

import (
	"github.com/djolertrk/kovid-obfuscation-passes/errors"
)

// Verify checks the structural invariants of a function:
//
//   - every block has a terminator
//   - every terminator successor belongs to the function
//   - every reachable block other than entry has at least one predecessor
//
// A declaration (no blocks) verifies trivially.
func Verify(f *Function) error {
	if f.IsDeclaration() {
		return nil
	}

	inFunc := make(map[*BasicBlock]bool, len(f.Blocks))
	for _, bb := range f.Blocks {
		inFunc[bb] = true
	}

	for _, bb := range f.Blocks {
		if bb.Term == nil {
			return errors.InvalidIR([]string{f.Name, bb.Name}, "block has no terminator")
		}
		for _, succ := range bb.Term.Successors() {
			if succ == nil {
				return errors.InvalidIR([]string{f.Name, bb.Name}, "terminator has a nil successor")
			}
			if !inFunc[succ] {
				return errors.InvalidIR([]string{f.Name, bb.Name}, "terminator targets a block outside the function")
			}
		}
	}

	preds := Predecessors(f)
	for bb := range Reachable(f) {
		if bb == f.Entry() {
			continue
		}
		if len(preds[bb]) == 0 {
			return errors.InvalidIR([]string{f.Name, bb.Name}, "reachable block has no predecessor")
		}
	}
	return nil
}
