package ir

import "github.com/oleiade/lane"

// Reachable returns the set of blocks reachable from the entry block by
// following terminator successors.
func Reachable(f *Function) map[*BasicBlock]bool {
	visited := make(map[*BasicBlock]bool)
	if f.Entry() == nil {
		return visited
	}

	stack := lane.NewStack()
	visited[f.Entry()] = true
	stack.Push(f.Entry())

	for !stack.Empty() {
		bb := stack.Pop().(*BasicBlock)
		if bb.Term == nil {
			continue
		}
		for _, succ := range bb.Term.Successors() {
			if succ != nil && !visited[succ] {
				visited[succ] = true
				stack.Push(succ)
			}
		}
	}
	return visited
}

// Predecessors computes the predecessor lists of every block in the
// function, in block sequence order.
func Predecessors(f *Function) map[*BasicBlock][]*BasicBlock {
	preds := make(map[*BasicBlock][]*BasicBlock, len(f.Blocks))
	for _, bb := range f.Blocks {
		if bb.Term == nil {
			continue
		}
		for _, succ := range bb.Term.Successors() {
			if succ != nil {
				preds[succ] = append(preds[succ], bb)
			}
		}
	}
	return preds
}

// PostOrder visits every reachable block in post-order.
func PostOrder(f *Function, action func(bb *BasicBlock)) {
	if f.Entry() == nil {
		return
	}

	stack := lane.NewStack()
	visited := make(map[*BasicBlock]bool)

	visited[f.Entry()] = true
	stack.Push(f.Entry())

	for !stack.Empty() {
		tail := true
		this := stack.Head().(*BasicBlock)

		// push the first unvisited successor, if any
		if this.Term != nil {
			for _, succ := range this.Term.Successors() {
				if succ != nil && !visited[succ] {
					tail = false
					visited[succ] = true
					stack.Push(succ)
					break
				}
			}
		}

		// every successor visited: emit and pop
		if tail {
			action(stack.Pop().(*BasicBlock))
		}
	}
}

// ReversePostOrder visits every reachable block in reverse post-order.
func ReversePostOrder(f *Function, action func(bb *BasicBlock)) {
	var bb []*BasicBlock

	PostOrder(f, func(p *BasicBlock) {
		bb = append(bb, p)
	})

	for i := len(bb) - 1; i >= 0; i-- {
		action(bb[i])
	}
}
