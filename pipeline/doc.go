// Package pipeline drives the obfuscation passes the way a host compiler
// consumes them: one synchronous call per function (or per module),
// returning a changed/unchanged signal the host uses to decide whether its
// cached analyses are stale.
//
// The Registry is an explicit, owned object constructed at process start
// and passed by reference; there is no package-level registration state.
// DefaultRegistry returns one with every standard pass bound to its
// strategy tag.
//
// Invocation is strictly sequential and non-reentrant per function. A host
// may run pipelines for different functions on different goroutines, as
// long as no Function is shared between them.
package pipeline
