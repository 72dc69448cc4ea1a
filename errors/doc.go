// Package errors provides structured error types for the obfuscation
// library's utility boundaries.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The core transforms never return errors: structurally
// mismatched or empty input is skipped and reported through the
// changed=false signal. The Error type serves the cipher, the IR verifier,
// the pass registry, and the CLI tool.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidCiphertext).
//		Path("main", "name").
//		Detail("odd-length hex input").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidKey(errors.PhaseEncode)
//	err := errors.UnknownStrategy("swizzle")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
