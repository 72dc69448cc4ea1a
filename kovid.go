package kovid

import "github.com/djolertrk/kovid-obfuscation-passes/ir"

// Strategy identifies an obfuscation strategy a host can request.
type Strategy string

const (
	// StrategyBreakCFG splits single-successor blocks and disguises the
	// original edge behind an opaque conditional branch.
	StrategyBreakCFG Strategy = "break-cfg"

	// StrategyFlatten routes single-successor blocks through a central
	// dispatcher driven by a synthetic state variable.
	StrategyFlatten Strategy = "flatten"

	// StrategyDummyCode inserts inert volatile arithmetic at function entry.
	StrategyDummyCode Strategy = "dummy-code"

	// StrategyExpandArith rewrites additions into equivalent longer sequences.
	StrategyExpandArith Strategy = "expand-arith"

	// StrategyEncryptStrings encrypts constant string globals in place.
	StrategyEncryptStrings Strategy = "encrypt-strings"

	// StrategyRename replaces defined function names with their encrypted form.
	StrategyRename Strategy = "rename"

	// StrategyStrip removes debug tags, unreachable blocks, and unused
	// internal functions.
	StrategyStrip Strategy = "strip"
)

// FunctionPass transforms a single function in place.
//
// Run returns true when the function was mutated, so the host can decide
// whether to invalidate cached analyses. Run never fails: malformed or
// ineligible input is skipped and reported as unchanged.
type FunctionPass interface {
	Name() string
	Run(fn *ir.Function) bool
}

// ModulePass transforms a whole module in place.
type ModulePass interface {
	Name() string
	RunModule(m *ir.Module) bool
}
