package ir

import "testing"

// diamond builds entry -> (left|right) -> exit, plus one unreachable block.
func diamond(t *testing.T) (*Function, map[string]*BasicBlock) {
	t.Helper()
	fn := NewFunction("diamond")
	entry := fn.NewBlock("entry")
	left := fn.NewBlock("left")
	right := fn.NewBlock("right")
	exit := fn.NewBlock("exit")
	island := fn.NewBlock("island")

	entry.Append(Instruction{Op: OpLoad, Dest: "c", Args: []Value{Ref{Name: "cond"}}})
	entry.SetTerm(&CondBr{Cond: Ref{Name: "c"}, Then: left, Else: right})
	left.SetTerm(&Jump{Target: exit})
	right.SetTerm(&Jump{Target: exit})
	exit.SetTerm(&Return{})
	island.SetTerm(&Jump{Target: exit})

	return fn, map[string]*BasicBlock{
		"entry": entry, "left": left, "right": right, "exit": exit, "island": island,
	}
}

func TestReachable(t *testing.T) {
	fn, blocks := diamond(t)
	reach := Reachable(fn)

	for _, name := range []string{"entry", "left", "right", "exit"} {
		if !reach[blocks[name]] {
			t.Errorf("%s should be reachable", name)
		}
	}
	if reach[blocks["island"]] {
		t.Error("island should not be reachable")
	}
}

func TestPredecessors(t *testing.T) {
	fn, blocks := diamond(t)
	preds := Predecessors(fn)

	if got := len(preds[blocks["exit"]]); got != 3 {
		t.Fatalf("exit has %d predecessors, want 3 (left, right, island)", got)
	}
	if got := len(preds[blocks["entry"]]); got != 0 {
		t.Fatalf("entry has %d predecessors, want 0", got)
	}
	if got := len(preds[blocks["left"]]); got != 1 || preds[blocks["left"]][0] != blocks["entry"] {
		t.Fatalf("left preds = %v", preds[blocks["left"]])
	}
}

func TestPostOrder(t *testing.T) {
	fn, _ := diamond(t)

	pos := make(map[string]int)
	i := 0
	PostOrder(fn, func(bb *BasicBlock) {
		pos[bb.Name] = i
		i++
	})

	if len(pos) != 4 {
		t.Fatalf("visited %d blocks, want 4 reachable", len(pos))
	}
	if _, ok := pos["island"]; ok {
		t.Fatal("post-order must not visit unreachable blocks")
	}
	// children come before parents in post-order
	if pos["exit"] >= pos["left"] && pos["exit"] >= pos["right"] {
		t.Fatalf("exit should precede at least its visited parent, got %v", pos)
	}
	if pos["entry"] != len(pos)-1 {
		t.Fatalf("entry must be last in post-order, got %v", pos)
	}
}

func TestReversePostOrder(t *testing.T) {
	fn, _ := diamond(t)

	var order []string
	ReversePostOrder(fn, func(bb *BasicBlock) {
		order = append(order, bb.Name)
	})

	if len(order) != 4 {
		t.Fatalf("visited %d blocks, want 4", len(order))
	}
	if order[0] != "entry" {
		t.Fatalf("reverse post-order must start at entry, got %v", order)
	}
	if order[len(order)-1] != "exit" {
		t.Fatalf("reverse post-order must end at exit, got %v", order)
	}
}

func TestReachable_Declaration(t *testing.T) {
	fn := NewFunction("decl")
	if got := Reachable(fn); len(got) != 0 {
		t.Fatalf("declaration reachability = %v, want empty", got)
	}
	PostOrder(fn, func(*BasicBlock) {
		t.Fatal("post-order over a declaration must not visit anything")
	})
}
