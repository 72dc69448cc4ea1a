package obfuscate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

func TestDummyCode_Shape(t *testing.T) {
	fn := chainFunc(t)
	entryLen := len(fn.Entry().Instrs)

	if !(&DummyCode{}).Run(fn) {
		t.Fatal("expected changed=true")
	}

	entry := fn.Entry()
	if len(entry.Instrs) != entryLen+6 {
		t.Fatalf("entry has %d instructions, want %d", len(entry.Instrs), entryLen+6)
	}

	wantOps := []ir.Op{ir.OpAlloca, ir.OpStore, ir.OpLoad, ir.OpAdd, ir.OpSub, ir.OpStore}
	for i, op := range wantOps {
		if entry.Instrs[i].Op != op {
			t.Fatalf("instr %d = %s, want %s", i, entry.Instrs[i].Op, op)
		}
	}

	// the memory accesses are volatile and tagged, the arithmetic is not
	for _, i := range []int{1, 2, 5} {
		in := entry.Instrs[i]
		if !in.Volatile || !hasTag(in, TagDummy) {
			t.Fatalf("instr %d must be volatile and tagged %q, got %v", i, TagDummy, in)
		}
	}
	for _, i := range []int{3, 4} {
		if hasTag(entry.Instrs[i], TagDummy) {
			t.Fatalf("arithmetic instr %d must stay untagged", i)
		}
	}
}

func TestDummyCode_SemanticPreservation(t *testing.T) {
	before := chainFunc(t)
	after := chainFunc(t)
	if !(&DummyCode{}).Run(after) {
		t.Fatal("expected changed=true")
	}

	resBefore := mustRun(t, &ir.Interp{}, before)
	resAfter := mustRun(t, &ir.Interp{}, after)

	if diff := cmp.Diff(resBefore.Output, resAfter.Output); diff != "" {
		t.Fatalf("output changed (-before +after):\n%s", diff)
	}
	if resBefore.Return != resAfter.Return {
		t.Fatalf("return changed: %d != %d", resBefore.Return, resAfter.Return)
	}
	if diff := cmp.Diff(resBefore.Trace, resAfter.Trace); diff != "" {
		t.Fatalf("trace changed (-before +after):\n%s", diff)
	}
}

func TestDummyCode_SkipsDeclarations(t *testing.T) {
	fn := ir.NewFunction("extern")
	if (&DummyCode{}).Run(fn) {
		t.Fatal("expected changed=false on a declaration")
	}
}

func TestDummyCode_RepeatedRunsUseFreshNames(t *testing.T) {
	fn := chainFunc(t)
	pass := &DummyCode{}

	if !pass.Run(fn) || !pass.Run(fn) {
		t.Fatal("both runs must report changed=true")
	}

	seen := make(map[string]bool)
	for _, in := range fn.Entry().Instrs {
		if in.Dest == "" {
			continue
		}
		if seen[in.Dest] {
			t.Fatalf("duplicate destination %q after repeated runs", in.Dest)
		}
		seen[in.Dest] = true
	}
	if _, err := (&ir.Interp{}).Run(fn); err != nil {
		t.Fatalf("doubly transformed function fails to execute: %v", err)
	}
}

func hasTag(in ir.Instruction, tag string) bool {
	for _, t := range in.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
