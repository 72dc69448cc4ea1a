package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSelect    Phase = "select"    // block selection
	PhaseTransform Phase = "transform" // CFG mutation
	PhaseVerify    Phase = "verify"    // IR structural checks
	PhaseEncode    Phase = "encode"    // cipher encryption
	PhaseDecode    Phase = "decode"    // cipher decryption
	PhaseExec      Phase = "exec"      // reference interpreter
	PhasePipeline  Phase = "pipeline"  // pass registry and driver
)

// Kind categorizes the error
type Kind string

const (
	KindStructuralMismatch  Kind = "structural_mismatch"
	KindEmptyInput          Kind = "empty_input"
	KindMalformedTerminator Kind = "malformed_terminator"
	KindInvalidKey          Kind = "invalid_key"
	KindInvalidCiphertext   Kind = "invalid_ciphertext"
	KindUnknownStrategy     Kind = "unknown_strategy"
	KindInvalidIR           Kind = "invalid_ir"
	KindStepLimit           Kind = "step_limit"
	KindUndefinedName       Kind = "undefined_name"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path, e.g. function and block names
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidKey creates an error for an empty or unusable crypto key
func InvalidKey(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidKey,
		Detail: "crypto key must be at least one byte",
	}
}

// InvalidCiphertext creates an error for malformed hex ciphertext
func InvalidCiphertext(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidCiphertext,
		Detail: detail,
		Cause:  cause,
	}
}

// UnknownStrategy creates an error for an unregistered strategy tag
func UnknownStrategy(strategy string) *Error {
	return &Error{
		Phase:  PhasePipeline,
		Kind:   KindUnknownStrategy,
		Detail: fmt.Sprintf("no pass registered for strategy %q", strategy),
		Value:  strategy,
	}
}

// InvalidIR creates a structural IR error located at the given path
func InvalidIR(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindInvalidIR,
		Path:   path,
		Detail: detail,
	}
}

// StepLimit creates an error for an interpreter run that did not terminate
func StepLimit(fn string, limit int) *Error {
	return &Error{
		Phase:  PhaseExec,
		Kind:   KindStepLimit,
		Path:   []string{fn},
		Detail: fmt.Sprintf("exceeded %d steps without returning", limit),
	}
}

// UndefinedName creates an error for a reference to an unknown local or cell
func UndefinedName(fn, block, name string) *Error {
	return &Error{
		Phase:  PhaseExec,
		Kind:   KindUndefinedName,
		Path:   []string{fn, block},
		Detail: fmt.Sprintf("reference to undefined name %q", name),
		Value:  name,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
