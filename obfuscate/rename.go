package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/cipher"
	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// RenameFunctions replaces the name of every defined internal function
// with an underscore followed by its encrypted form, and patches every
// call site so the module stays consistent. The cipher is reversible: the
// kovid-deobfuscator tool recovers original names given the key.
type RenameFunctions struct {
	Key string
}

// NewRenameFunctions creates the pass, falling back to DefaultKey for an
// empty key.
func NewRenameFunctions(key string) *RenameFunctions {
	if key == "" {
		key = DefaultKey
	}
	return &RenameFunctions{Key: key}
}

// Name implements kovid.ModulePass.
func (p *RenameFunctions) Name() string { return "rename" }

// RunModule renames eligible functions. Declarations and functions with
// non-internal linkage keep their names: external references must stay
// resolvable.
func (p *RenameFunctions) RunModule(m *ir.Module) bool {
	renamed := make(map[string]string)
	for _, fn := range m.Funcs {
		if fn.IsDeclaration() {
			Logger().Debug("skipping function declaration", zap.String("func", fn.Name))
			continue
		}
		if !fn.Internal {
			Logger().Debug("skipping function with non-internal linkage", zap.String("func", fn.Name))
			continue
		}

		enc, err := cipher.Encode(fn.Name, p.Key)
		if err != nil {
			Logger().Warn("skipping function", zap.String("func", fn.Name), zap.Error(err))
			continue
		}
		newName := "_" + enc

		Logger().Debug("renamed function",
			zap.String("from", fn.Name),
			zap.String("to", newName))

		renamed[fn.Name] = newName
		fn.Name = newName
	}
	if len(renamed) == 0 {
		return false
	}

	// Call sites reference callees by name, so every call to a renamed
	// function must follow the rename.
	for _, fn := range m.Funcs {
		for _, bb := range fn.Blocks {
			for i := range bb.Instrs {
				ins := &bb.Instrs[i]
				if ins.Op != ir.OpCall {
					continue
				}
				if newName, ok := renamed[ins.Callee]; ok {
					ins.Callee = newName
				}
			}
		}
	}
	return true
}
