// Package kovid provides code obfuscation passes over an in-memory
// control-flow graph representation.
//
// The passes rewrite a compiled function's CFG to frustrate reverse
// engineering while preserving the function's observable runtime behavior.
// They are meant to be driven by a host compiler as a late-pipeline
// transformation step.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	kovid/               Root package with strategy tags and pass interfaces
//	├── ir/              In-memory IR: modules, functions, basic blocks,
//	│                    terminators, CFG traversal and a reference interpreter
//	├── obfuscate/       The obfuscation passes: control-flow breaking,
//	│                    control-flow flattening, dummy code insertion,
//	│                    arithmetic expansion, string encryption, renaming,
//	│                    and metadata stripping
//	├── cipher/          Reversible XOR+hex cipher for names and strings
//	├── pipeline/        Pass registry and the per-function pipeline driver
//	│                    implementing the host integration contract
//	├── errors/          Structured error types for utility boundaries
//	└── cmd/
//	    └── kovid-deobfuscator/  CLI tool that reverses the rename cipher
//
// # Quick Start
//
// Build a function with the ir package, then transform it:
//
//	fn := ir.NewFunction("work")
//	// ... populate blocks ...
//
//	p := pipeline.New(pipeline.Config{CryptoKey: "secret"})
//	changed := p.RunFunction(fn, kovid.StrategyFlatten)
//
// The changed signal tells the host whether its cached analyses over the
// function are stale.
//
// # Transformation Guarantees
//
// Every pass preserves the dynamic sequence of original blocks observed
// during execution: opaque predicates always resolve to the pre-existing
// edge, and flattening preserves execution order through indirection only.
// Selection is snapshot-based: eligible blocks are frozen before any
// mutation begins, so blocks created during a pass run are never selected
// by that same run.
//
// # Thread Safety
//
// The core is single-threaded per function. A host may process different
// functions concurrently, but each Function must be mutated by exactly one
// goroutine at a time; no state is shared across function boundaries.
package kovid
