package ir

// Op identifies an instruction kind.
type Op byte

const (
	// OpAlloca creates a function-scoped storage cell named by Dest.
	OpAlloca Op = iota
	// OpStore writes Args[0] into the cell named by Args[1].
	OpStore
	// OpLoad reads the cell named by Args[0] into Dest.
	OpLoad
	// OpAdd, OpSub, OpMul compute Args[0] op Args[1] into Dest.
	OpAdd
	OpSub
	OpMul
	// OpCall invokes Callee with Args; the result, if any, lands in Dest.
	OpCall
	// OpPrint emits Args[0] to the function's observable output.
	OpPrint
)

var opNames = [...]string{
	OpAlloca: "alloca",
	OpStore:  "store",
	OpLoad:   "load",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpCall:   "call",
	OpPrint:  "print",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Instruction is a single non-terminator operation inside a basic block.
type Instruction struct {
	Args     []Value
	Dest     string
	Callee   string
	Tags     []string
	Op       Op
	Volatile bool
}

// HasTag reports whether the instruction carries the given metadata tag.
func (i *Instruction) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Value is an instruction operand: either a constant or a reference to a
// named local or cell.
type Value interface {
	isValue()
}

// Const is an integer constant operand.
type Const struct {
	Int int64
}

// Ref names a local result or storage cell.
type Ref struct {
	Name string
}

func (Const) isValue() {}
func (Ref) isValue()   {}
