package obfuscate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// TagObf marks instructions inserted by the ExpandArith pass.
const TagObf = "obf"

// ExpandArith rewrites plain additions into longer equivalent sequences.
// Each `d = add a, b` becomes:
//
//	c   = alloca
//	      volatile store 0, c
//	dl  = volatile load c        ; 0, anchored against constant folding
//	dm  = add dl, 42
//	tmp = sub dm, 42             ; back to 0
//	lft = add a, tmp             ; a + 0
//	d   = add lft, b             ; a + b, original destination kept
//
// Keeping the original destination name replaces every use of the old
// result without rewriting downstream instructions.
type ExpandArith struct{}

// Name implements kovid.FunctionPass.
func (p *ExpandArith) Name() string { return "expand-arith" }

// Run expands every addition in the function. Per block, the positions of
// the targeted instructions are collected into a snapshot before any
// rewriting, so the expansion's own additions are never revisited in the
// same run.
func (p *ExpandArith) Run(fn *ir.Function) bool {
	changed := false
	site := 0
	for _, bb := range fn.Blocks {
		// snapshot of add positions in this block
		var adds []int
		for i := range bb.Instrs {
			if bb.Instrs[i].Op == ir.OpAdd {
				adds = append(adds, i)
			}
		}
		if len(adds) == 0 {
			continue
		}

		Logger().Debug("complicating additions",
			zap.String("func", fn.Name),
			zap.String("block", bb.Name),
			zap.Int("sites", len(adds)))

		rewritten := make([]ir.Instruction, 0, len(bb.Instrs)+6*len(adds))
		next := 0
		for i := range bb.Instrs {
			if next < len(adds) && adds[next] == i {
				next++
				rewritten = append(rewritten, p.expand(fn, site, &bb.Instrs[i])...)
				site++
				continue
			}
			rewritten = append(rewritten, bb.Instrs[i])
		}
		bb.Instrs = rewritten
		changed = true
	}
	return changed
}

// expand builds the replacement sequence for one addition. The site index
// keeps cell names distinct across expansions that are not yet part of the
// block when the next name is derived.
func (p *ExpandArith) expand(fn *ir.Function, site int, add *ir.Instruction) []ir.Instruction {
	cell := fn.UniqueName(fmt.Sprintf("dummyForObf.%d", site))
	load := cell + ".load"
	dummy := cell + ".dummy"
	tmp := cell + ".tmp"
	left := cell + ".left"

	return []ir.Instruction{
		{Op: ir.OpAlloca, Dest: cell},
		{Op: ir.OpStore, Args: []ir.Value{ir.Const{Int: 0}, ir.Ref{Name: cell}}, Volatile: true},
		{Op: ir.OpLoad, Dest: load, Args: []ir.Value{ir.Ref{Name: cell}}, Volatile: true},
		{Op: ir.OpAdd, Dest: dummy, Args: []ir.Value{ir.Ref{Name: load}, ir.Const{Int: 42}}, Tags: []string{TagObf}},
		{Op: ir.OpSub, Dest: tmp, Args: []ir.Value{ir.Ref{Name: dummy}, ir.Const{Int: 42}}, Tags: []string{TagObf}},
		{Op: ir.OpAdd, Dest: left, Args: []ir.Value{add.Args[0], ir.Ref{Name: tmp}}, Tags: []string{TagObf}},
		{Op: ir.OpAdd, Dest: add.Dest, Args: []ir.Value{ir.Ref{Name: left}, add.Args[1]}, Tags: []string{TagObf}},
	}
}
