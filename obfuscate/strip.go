package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// TagDebug marks debug metadata on instructions and globals.
const TagDebug = "dbg"

// StripMetadata reduces the information available to an attacker: it
// removes debug tags from every instruction and global, deletes
// unreachable blocks, and drops defined internal functions that are never
// called.
type StripMetadata struct{}

// Name implements kovid.ModulePass.
func (p *StripMetadata) Name() string { return "strip" }

// RunModule strips the module in place.
func (p *StripMetadata) RunModule(m *ir.Module) bool {
	changed := false

	for _, fn := range m.Funcs {
		for _, bb := range fn.Blocks {
			for i := range bb.Instrs {
				if removeTag(&bb.Instrs[i].Tags, TagDebug) {
					changed = true
				}
			}
		}
		if p.removeUnreachable(fn) {
			changed = true
		}
	}

	for _, g := range m.Globals {
		if removeTag(&g.Tags, TagDebug) {
			changed = true
		}
	}

	if p.removeUnusedFuncs(m) {
		changed = true
	}
	return changed
}

// removeUnreachable deletes blocks that cannot be reached from entry.
func (p *StripMetadata) removeUnreachable(fn *ir.Function) bool {
	if fn.IsDeclaration() {
		return false
	}
	reach := ir.Reachable(fn)
	var dead []*ir.BasicBlock
	for _, bb := range fn.Blocks {
		if !reach[bb] {
			dead = append(dead, bb)
		}
	}
	for _, bb := range dead {
		Logger().Debug("removing unreachable block",
			zap.String("func", fn.Name), zap.String("block", bb.Name))
		fn.RemoveBlock(bb)
	}
	return len(dead) > 0
}

// removeUnusedFuncs drops defined internal functions with no call sites
// anywhere in the module.
func (p *StripMetadata) removeUnusedFuncs(m *ir.Module) bool {
	used := make(map[string]bool)
	for _, fn := range m.Funcs {
		for _, bb := range fn.Blocks {
			for i := range bb.Instrs {
				if bb.Instrs[i].Op == ir.OpCall {
					used[bb.Instrs[i].Callee] = true
				}
			}
		}
	}

	kept := m.Funcs[:0:0]
	removed := false
	for _, fn := range m.Funcs {
		if !fn.IsDeclaration() && fn.Internal && !used[fn.Name] {
			Logger().Debug("removing unused function", zap.String("func", fn.Name))
			removed = true
			continue
		}
		kept = append(kept, fn)
	}
	m.Funcs = kept
	return removed
}

func removeTag(tags *[]string, tag string) bool {
	for i, t := range *tags {
		if t == tag {
			*tags = append((*tags)[:i], (*tags)[i+1:]...)
			return true
		}
	}
	return false
}
