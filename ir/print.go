package ir

import (
	"fmt"
	"strings"
)

// String renders the function as a readable listing, one block per
// paragraph. The format is for debugging and test assertions, not a
// persisted representation.
func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "func %s:\n", f.Name)
	for _, bb := range f.Blocks {
		writeBlock(&sb, bb)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, bb *BasicBlock) {
	fmt.Fprintf(sb, "%s:\n", bb.Name)
	for i := range bb.Instrs {
		sb.WriteString("  ")
		sb.WriteString(formatInstr(&bb.Instrs[i]))
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	sb.WriteString(formatTerm(bb.Term))
	sb.WriteByte('\n')
}

func formatInstr(ins *Instruction) string {
	var sb strings.Builder
	if ins.Dest != "" {
		sb.WriteString(ins.Dest)
		sb.WriteString(" = ")
	}
	if ins.Volatile {
		sb.WriteString("volatile ")
	}
	sb.WriteString(ins.Op.String())
	if ins.Op == OpCall {
		sb.WriteByte(' ')
		sb.WriteString(ins.Callee)
	}
	for i, arg := range ins.Args {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(formatValue(arg))
	}
	if len(ins.Tags) > 0 {
		sb.WriteString(" !")
		sb.WriteString(strings.Join(ins.Tags, " !"))
	}
	return sb.String()
}

func formatTerm(t Terminator) string {
	switch term := t.(type) {
	case *Jump:
		return fmt.Sprintf("jump %s", term.Target.Name)
	case *CondBr:
		return fmt.Sprintf("br %s, %s, %s", formatValue(term.Cond), term.Then.Name, term.Else.Name)
	case *Switch:
		var sb strings.Builder
		fmt.Fprintf(&sb, "switch %s, default %s [", formatValue(term.Index), term.Default.Name)
		for i, c := range term.Cases {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d: %s", c.Value, c.Target.Name)
		}
		sb.WriteByte(']')
		return sb.String()
	case *Return:
		if term.Value == nil {
			return "ret"
		}
		return fmt.Sprintf("ret %s", formatValue(term.Value))
	case *Unreachable:
		return "unreachable"
	case nil:
		return "<no terminator>"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

func formatValue(v Value) string {
	switch val := v.(type) {
	case Const:
		return fmt.Sprintf("%d", val.Int)
	case Ref:
		return "%" + val.Name
	default:
		return fmt.Sprintf("<%T>", v)
	}
}
