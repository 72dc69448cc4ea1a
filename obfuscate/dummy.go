package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// TagDummy marks instructions inserted by the DummyCode pass.
const TagDummy = "dummy"

// DummyCode inserts irrelevant code that does not affect execution: a
// local cell with a volatile store of zero, a volatile load, an add-1 and
// sub-1 pair, and a volatile store of the result, all at the top of the
// entry block. The volatile accesses and the tag keep later optimization
// stages from deleting the noise.
type DummyCode struct{}

// Name implements kovid.FunctionPass.
func (p *DummyCode) Name() string { return "dummy-code" }

// Run prepends the dummy sequence to the function's entry block.
// Declarations are skipped.
func (p *DummyCode) Run(fn *ir.Function) bool {
	if fn.IsDeclaration() {
		return false
	}
	Logger().Debug("inserting dummy code", zap.String("func", fn.Name))

	cell := fn.UniqueName("dummy")
	load := cell + ".load"
	add := cell + ".add"
	sub := cell + ".sub"

	fn.Entry().Prepend(
		ir.Instruction{Op: ir.OpAlloca, Dest: cell},
		ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Const{Int: 0}, ir.Ref{Name: cell}}, Volatile: true, Tags: []string{TagDummy}},
		ir.Instruction{Op: ir.OpLoad, Dest: load, Args: []ir.Value{ir.Ref{Name: cell}}, Volatile: true, Tags: []string{TagDummy}},
		ir.Instruction{Op: ir.OpAdd, Dest: add, Args: []ir.Value{ir.Ref{Name: load}, ir.Const{Int: 1}}},
		ir.Instruction{Op: ir.OpSub, Dest: sub, Args: []ir.Value{ir.Ref{Name: add}, ir.Const{Int: 1}}},
		ir.Instruction{Op: ir.OpStore, Args: []ir.Value{ir.Ref{Name: sub}, ir.Ref{Name: cell}}, Volatile: true, Tags: []string{TagDummy}},
	)
	return true
}
