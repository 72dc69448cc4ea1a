// Package obfuscate implements the obfuscation passes.
//
// The two structural passes rewrite a function's control-flow graph:
//
//   - BreakCFG splits every eligible single-successor block and disguises
//     the original edge behind an opaque conditional branch.
//   - Flatten routes every eligible block through a central dispatcher
//     driven by a synthetic state variable, so block order in a listing no
//     longer predicts execution order.
//
// Both follow the same discipline: Select freezes an immutable snapshot of
// eligible blocks before any mutation, each block's terminator shape is
// re-validated immediately before it is mutated, and a mismatch skips that
// block rather than aborting the run. Blocks created by a pass are never
// selected by the same run, and a pass never returns an error: the only
// signal is changed/unchanged.
//
// The remaining passes are self-contained utilities in the same spirit:
// dummy code insertion, arithmetic expansion, string encryption, function
// renaming, and metadata stripping.
package obfuscate
