package obfuscate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

func selectedNames(fn *ir.Function, pred BlockPredicate) []string {
	var names []string
	for _, bb := range Select(fn, pred) {
		names = append(names, bb.Name)
	}
	return names
}

func TestSelect_FlattenEligible(t *testing.T) {
	fn := chainFunc(t)

	got := selectedNames(fn, FlattenEligible)
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect_NeverReturnsEntry(t *testing.T) {
	fn := chainFunc(t)
	// entry ends in a Jump and has two instructions, but must never be
	// eligible under either predicate
	for _, pred := range []BlockPredicate{FlattenEligible, EdgeSplitEligible} {
		for _, bb := range Select(fn, pred) {
			if bb == fn.Entry() {
				t.Fatal("snapshot contains the entry block")
			}
		}
	}
}

func TestSelect_EdgeSplitSizeConstraint(t *testing.T) {
	fn := chainFunc(t)
	// shrink a to a single instruction: still flatten-eligible, no longer
	// edge-split-eligible
	a := fn.Blocks[1]
	a.Instrs = a.Instrs[:1]

	if got := selectedNames(fn, EdgeSplitEligible); len(got) != 1 || got[0] != "b" {
		t.Fatalf("edge-split snapshot = %v, want [b]", got)
	}
	if got := selectedNames(fn, FlattenEligible); len(got) != 2 {
		t.Fatalf("flatten snapshot = %v, want [a b]", got)
	}
}

func TestSelect_OnlyUnconditionalTerminators(t *testing.T) {
	fn := chainFunc(t)
	b := fn.Blocks[2]
	b.SetTerm(&ir.CondBr{Cond: ir.Const{Int: 1}, Then: fn.Blocks[3], Else: fn.Blocks[3]})

	for _, bb := range Select(fn, FlattenEligible) {
		if _, ok := bb.Term.(*ir.Jump); !ok {
			t.Fatalf("selected block %s has terminator %T, want *ir.Jump", bb.Name, bb.Term)
		}
	}
	if got := selectedNames(fn, FlattenEligible); len(got) != 1 || got[0] != "a" {
		t.Fatalf("snapshot = %v, want [a]", got)
	}
}

func TestSelect_EmptyCases(t *testing.T) {
	if got := Select(ir.NewFunction("decl"), FlattenEligible); len(got) != 0 {
		t.Fatalf("declaration snapshot = %v, want empty", got)
	}

	fn := ir.NewFunction("single")
	fn.NewBlock("entry").SetTerm(&ir.Return{})
	if got := Select(fn, FlattenEligible); len(got) != 0 {
		t.Fatalf("single-block snapshot = %v, want empty", got)
	}
}

func TestSelect_SequenceOrder(t *testing.T) {
	fn := ir.NewFunction("ordered")
	entry := fn.NewBlock("entry")
	var prev *ir.BasicBlock = entry
	for _, name := range []string{"b3", "b1", "b2"} {
		bb := fn.NewBlock(name)
		bb.Append(ir.Instruction{Op: ir.OpPrint, Args: []ir.Value{ir.Const{Int: 0}}})
		prev.SetTerm(&ir.Jump{Target: bb})
		prev = bb
	}
	prev.SetTerm(&ir.Return{})
	entry.SetTerm(&ir.Jump{Target: fn.Blocks[1]})

	// discovery order follows block sequence order, not name order
	got := selectedNames(fn, FlattenEligible)
	want := []string{"b3", "b1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot order mismatch (-want +got):\n%s", diff)
	}
}
