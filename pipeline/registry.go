package pipeline

import (
	"sort"

	kovid "github.com/djolertrk/kovid-obfuscation-passes"
	"github.com/djolertrk/kovid-obfuscation-passes/errors"
	"github.com/djolertrk/kovid-obfuscation-passes/obfuscate"
)

// Registry binds strategy tags to passes.
type Registry struct {
	funcPasses map[kovid.Strategy]kovid.FunctionPass
	modPasses  map[kovid.Strategy]kovid.ModulePass
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcPasses: make(map[kovid.Strategy]kovid.FunctionPass),
		modPasses:  make(map[kovid.Strategy]kovid.ModulePass),
	}
}

// DefaultRegistry creates a registry with all standard passes. The key
// configures the renaming and string encryption ciphers; an empty key
// falls back to the passes' default.
func DefaultRegistry(key string) *Registry {
	r := NewRegistry()
	r.RegisterFunctionPass(kovid.StrategyBreakCFG, &obfuscate.BreakCFG{})
	r.RegisterFunctionPass(kovid.StrategyFlatten, &obfuscate.Flatten{})
	r.RegisterFunctionPass(kovid.StrategyDummyCode, &obfuscate.DummyCode{})
	r.RegisterFunctionPass(kovid.StrategyExpandArith, &obfuscate.ExpandArith{})
	r.RegisterModulePass(kovid.StrategyEncryptStrings, obfuscate.NewEncryptStrings(key))
	r.RegisterModulePass(kovid.StrategyRename, obfuscate.NewRenameFunctions(key))
	r.RegisterModulePass(kovid.StrategyStrip, &obfuscate.StripMetadata{})
	return r
}

// RegisterFunctionPass binds a function pass to a strategy tag, replacing
// any previous binding.
func (r *Registry) RegisterFunctionPass(s kovid.Strategy, p kovid.FunctionPass) {
	r.funcPasses[s] = p
}

// RegisterModulePass binds a module pass to a strategy tag, replacing any
// previous binding.
func (r *Registry) RegisterModulePass(s kovid.Strategy, p kovid.ModulePass) {
	r.modPasses[s] = p
}

// FunctionPass resolves a strategy to its function pass.
func (r *Registry) FunctionPass(s kovid.Strategy) (kovid.FunctionPass, error) {
	p, ok := r.funcPasses[s]
	if !ok {
		return nil, errors.UnknownStrategy(string(s))
	}
	return p, nil
}

// ModulePass resolves a strategy to its module pass.
func (r *Registry) ModulePass(s kovid.Strategy) (kovid.ModulePass, error) {
	p, ok := r.modPasses[s]
	if !ok {
		return nil, errors.UnknownStrategy(string(s))
	}
	return p, nil
}

// Strategies returns every registered strategy tag, sorted.
func (r *Registry) Strategies() []kovid.Strategy {
	out := make([]kovid.Strategy, 0, len(r.funcPasses)+len(r.modPasses))
	for s := range r.funcPasses {
		out = append(out, s)
	}
	for s := range r.modPasses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
