package obfuscate

import (
	"testing"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// chainFunc builds entry -> a -> b -> exit, where a and b carry enough
// instructions to be eligible for every strategy. The function prints 11
// and 22 and returns 33.
func chainFunc(t *testing.T) *ir.Function {
	t.Helper()
	fn := ir.NewFunction("chain")
	entry := fn.NewBlock("entry")
	a := fn.NewBlock("a")
	b := fn.NewBlock("b")
	exit := fn.NewBlock("exit")

	entry.Append(
		ir.Instruction{Op: ir.OpAlloca, Dest: "acc"},
		ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Const{Int: 11}, ir.Ref{Name: "acc"}}},
	)
	entry.SetTerm(&ir.Jump{Target: a})

	a.Append(
		ir.Instruction{Op: ir.OpLoad, Dest: "v1", Args: []ir.Value{ir.Ref{Name: "acc"}}},
		ir.Instruction{Op: ir.OpPrint, Args: []ir.Value{ir.Ref{Name: "v1"}}},
	)
	a.SetTerm(&ir.Jump{Target: b})

	b.Append(
		ir.Instruction{Op: ir.OpAdd, Dest: "v2", Args: []ir.Value{ir.Ref{Name: "v1"}, ir.Const{Int: 11}}},
		ir.Instruction{Op: ir.OpPrint, Args: []ir.Value{ir.Ref{Name: "v2"}}},
	)
	b.SetTerm(&ir.Jump{Target: exit})

	exit.Append(
		ir.Instruction{Op: ir.OpAdd, Dest: "v3", Args: []ir.Value{ir.Ref{Name: "v2"}, ir.Const{Int: 11}}},
	)
	exit.SetTerm(&ir.Return{Value: ir.Ref{Name: "v3"}})

	return fn
}

// loopFunc builds a loop whose eligible blocks form the contiguous chain
// the flattening heuristic expects: entry conditionally enters body -> back,
// and back jumps to entry. The tick callee drives the iteration count.
func loopFunc(t *testing.T) *ir.Function {
	t.Helper()
	fn := ir.NewFunction("loop")
	entry := fn.NewBlock("entry")
	body := fn.NewBlock("body")
	back := fn.NewBlock("back")
	exit := fn.NewBlock("exit")

	entry.Append(ir.Instruction{Op: ir.OpCall, Dest: "go", Callee: "tick"})
	entry.SetTerm(&ir.CondBr{Cond: ir.Ref{Name: "go"}, Then: body, Else: exit})

	body.Append(
		ir.Instruction{Op: ir.OpCall, Dest: "n", Callee: "next"},
		ir.Instruction{Op: ir.OpPrint, Args: []ir.Value{ir.Ref{Name: "n"}}},
	)
	body.SetTerm(&ir.Jump{Target: back})

	back.Append(ir.Instruction{Op: ir.OpPrint, Args: []ir.Value{ir.Const{Int: -1}}})
	back.SetTerm(&ir.Jump{Target: entry})

	exit.SetTerm(&ir.Return{Value: ir.Const{Int: 0}})

	return fn
}

// loopInterp returns an interpreter whose tick callee allows `iters`
// iterations and whose next callee counts up from 1.
func loopInterp(iters int) *ir.Interp {
	ticks := 0
	n := int64(0)
	return &ir.Interp{Funcs: map[string]func([]int64) int64{
		"tick": func([]int64) int64 {
			ticks++
			if ticks <= iters {
				return 1
			}
			return 0
		},
		"next": func([]int64) int64 {
			n++
			return n
		},
	}}
}

// blockNames returns the names of all blocks currently in the function.
func blockNames(fn *ir.Function) []string {
	out := make([]string, len(fn.Blocks))
	for i, bb := range fn.Blocks {
		out[i] = bb.Name
	}
	return out
}

// nameSet builds the filter set used with ExecResult.OriginalTrace.
func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func mustRun(t *testing.T, it *ir.Interp, fn *ir.Function) *ir.ExecResult {
	t.Helper()
	res, err := it.Run(fn)
	if err != nil {
		t.Fatalf("interpreting %s: %v", fn.Name, err)
	}
	return res
}
