package ir

import (
	"github.com/djolertrk/kovid-obfuscation-passes/errors"
)

// DefaultStepLimit bounds interpreter execution. The limit counts executed
// blocks, so even a flattened function with many dispatcher round-trips
// stays well under it.
const DefaultStepLimit = 10000

// ExecResult holds the observable outcome of interpreting a function.
type ExecResult struct {
	// Trace is the sequence of block names in execution order, including
	// blocks synthesized by transforms.
	Trace []string
	// Output collects values emitted by print instructions.
	Output []int64
	// Return is the returned value; Returned is false for a void return.
	Return   int64
	Returned bool
}

// OriginalTrace filters the trace down to the given block names, preserving
// order. Transform tests use it to compare the dynamic sequence of original
// blocks before and after a rewrite.
func (r *ExecResult) OriginalTrace(names map[string]bool) []string {
	var out []string
	for _, n := range r.Trace {
		if names[n] {
			out = append(out, n)
		}
	}
	return out
}

// Interp executes functions of the toy IR. It exists to check behavior
// preservation: a transform is correct when interpretation before and after
// yields the same Output, Return, and original-block trace.
type Interp struct {
	// Funcs supplies implementations for call instructions. Unknown callees
	// evaluate to zero.
	Funcs map[string]func(args []int64) int64
	// StepLimit overrides DefaultStepLimit when positive.
	StepLimit int
}

// Run interprets fn from its entry block until a return, an error, or the
// step limit.
func (it *Interp) Run(fn *Function) (*ExecResult, error) {
	if fn.IsDeclaration() {
		return nil, errors.New(errors.PhaseExec, errors.KindEmptyInput).
			Path(fn.Name).
			Detail("cannot execute a declaration").
			Build()
	}

	limit := it.StepLimit
	if limit <= 0 {
		limit = DefaultStepLimit
	}

	cells := make(map[string]int64)
	locals := make(map[string]int64)
	res := &ExecResult{}

	bb := fn.Entry()
	for steps := 0; ; steps++ {
		if steps >= limit {
			return nil, errors.StepLimit(fn.Name, limit)
		}
		res.Trace = append(res.Trace, bb.Name)

		for i := range bb.Instrs {
			if err := it.exec(fn, bb, &bb.Instrs[i], cells, locals, res); err != nil {
				return nil, err
			}
		}

		switch term := bb.Term.(type) {
		case *Jump:
			bb = term.Target
		case *CondBr:
			cond, err := it.eval(fn, bb, term.Cond, locals)
			if err != nil {
				return nil, err
			}
			if cond != 0 {
				bb = term.Then
			} else {
				bb = term.Else
			}
		case *Switch:
			idx, err := it.eval(fn, bb, term.Index, locals)
			if err != nil {
				return nil, err
			}
			next := term.Default
			for _, c := range term.Cases {
				if c.Value == idx {
					next = c.Target
					break
				}
			}
			bb = next
		case *Return:
			if term.Value != nil {
				v, err := it.eval(fn, bb, term.Value, locals)
				if err != nil {
					return nil, err
				}
				res.Return = v
				res.Returned = true
			}
			return res, nil
		case *Unreachable:
			return nil, errors.InvalidIR([]string{fn.Name, bb.Name}, "reached unreachable terminator")
		case nil:
			return nil, errors.InvalidIR([]string{fn.Name, bb.Name}, "block has no terminator")
		default:
			return nil, errors.InvalidIR([]string{fn.Name, bb.Name}, "unknown terminator kind")
		}
	}
}

func (it *Interp) exec(fn *Function, bb *BasicBlock, ins *Instruction, cells, locals map[string]int64, res *ExecResult) error {
	switch ins.Op {
	case OpAlloca:
		cells[ins.Dest] = 0
	case OpStore:
		v, err := it.eval(fn, bb, ins.Args[0], locals)
		if err != nil {
			return err
		}
		target, ok := ins.Args[1].(Ref)
		if !ok {
			return errors.InvalidIR([]string{fn.Name, bb.Name}, "store target is not a cell reference")
		}
		if _, exists := cells[target.Name]; !exists {
			return errors.UndefinedName(fn.Name, bb.Name, target.Name)
		}
		cells[target.Name] = v
	case OpLoad:
		src, ok := ins.Args[0].(Ref)
		if !ok {
			return errors.InvalidIR([]string{fn.Name, bb.Name}, "load source is not a cell reference")
		}
		v, exists := cells[src.Name]
		if !exists {
			return errors.UndefinedName(fn.Name, bb.Name, src.Name)
		}
		locals[ins.Dest] = v
	case OpAdd, OpSub, OpMul:
		a, err := it.eval(fn, bb, ins.Args[0], locals)
		if err != nil {
			return err
		}
		b, err := it.eval(fn, bb, ins.Args[1], locals)
		if err != nil {
			return err
		}
		switch ins.Op {
		case OpAdd:
			locals[ins.Dest] = a + b
		case OpSub:
			locals[ins.Dest] = a - b
		case OpMul:
			locals[ins.Dest] = a * b
		}
	case OpCall:
		args := make([]int64, len(ins.Args))
		for i, arg := range ins.Args {
			v, err := it.eval(fn, bb, arg, locals)
			if err != nil {
				return err
			}
			args[i] = v
		}
		var v int64
		if impl, ok := it.Funcs[ins.Callee]; ok {
			v = impl(args)
		}
		if ins.Dest != "" {
			locals[ins.Dest] = v
		}
	case OpPrint:
		v, err := it.eval(fn, bb, ins.Args[0], locals)
		if err != nil {
			return err
		}
		res.Output = append(res.Output, v)
	default:
		return errors.InvalidIR([]string{fn.Name, bb.Name}, "unknown opcode")
	}
	return nil
}

func (it *Interp) eval(fn *Function, bb *BasicBlock, v Value, locals map[string]int64) (int64, error) {
	switch val := v.(type) {
	case Const:
		return val.Int, nil
	case Ref:
		got, ok := locals[val.Name]
		if !ok {
			return 0, errors.UndefinedName(fn.Name, bb.Name, val.Name)
		}
		return got, nil
	default:
		return 0, errors.InvalidIR([]string{fn.Name, bb.Name}, "unknown value kind")
	}
}
