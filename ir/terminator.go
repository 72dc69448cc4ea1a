package ir

// Terminator is the control instruction ending a basic block. It is a
// sealed sum type: the concrete kinds are Jump, CondBr, Switch, Return,
// and Unreachable. Consumers dispatch with an exhaustive type switch.
type Terminator interface {
	// Successors returns the possible next blocks in evaluation order.
	Successors() []*BasicBlock
	isTerminator()
}

// Jump transfers control unconditionally to Target. It is the only
// terminator kind eligible for CFG transforms.
type Jump struct {
	Target *BasicBlock
}

// CondBr transfers control to Then when Cond is non-zero, otherwise Else.
type CondBr struct {
	Cond Value
	Then *BasicBlock
	Else *BasicBlock
}

// SwitchCase binds one dispatch value to a target block.
type SwitchCase struct {
	Target *BasicBlock
	Value  int64
}

// Switch transfers control to the case matching Index, or Default.
type Switch struct {
	Index   Value
	Default *BasicBlock
	Cases   []SwitchCase
}

// AddCase appends a (value, target) pair to the switch's dispatch table.
func (s *Switch) AddCase(v int64, target *BasicBlock) {
	s.Cases = append(s.Cases, SwitchCase{Value: v, Target: target})
}

// Return ends the function. Value may be nil for a void return.
type Return struct {
	Value Value
}

// Unreachable marks a block that control must never reach.
type Unreachable struct{}

func (t *Jump) Successors() []*BasicBlock { return []*BasicBlock{t.Target} }

func (t *CondBr) Successors() []*BasicBlock { return []*BasicBlock{t.Then, t.Else} }

func (t *Switch) Successors() []*BasicBlock {
	succs := make([]*BasicBlock, 0, len(t.Cases)+1)
	if t.Default != nil {
		succs = append(succs, t.Default)
	}
	for _, c := range t.Cases {
		succs = append(succs, c.Target)
	}
	return succs
}

func (t *Return) Successors() []*BasicBlock { return nil }

func (t *Unreachable) Successors() []*BasicBlock { return nil }

func (*Jump) isTerminator()        {}
func (*CondBr) isTerminator()      {}
func (*Switch) isTerminator()      {}
func (*Return) isTerminator()      {}
func (*Unreachable) isTerminator() {}
