package ir

import (
	"fmt"
	"strings"
)

// Module is a named collection of globals and functions. A module owns its
// members exclusively; passes mutate them in place.
type Module struct {
	Name    string
	Globals []*Global
	Funcs   []*Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunc appends fn to the module and returns it.
func (m *Module) AddFunc(fn *Function) *Function {
	m.Funcs = append(m.Funcs, fn)
	return fn
}

// AddGlobal appends g to the module and returns it.
func (m *Module) AddGlobal(g *Global) *Global {
	m.Globals = append(m.Globals, g)
	return g
}

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Function {
	for _, fn := range m.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Global is a module-scoped variable with a raw initializer.
type Global struct {
	Name     string
	Init     []byte
	IsString bool
	Constant bool
	Tags     []string
}

// HasTag reports whether the global carries the given metadata tag.
func (g *Global) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Function is an ordered sequence of basic blocks. Blocks[0] is the entry
// block. A function with no blocks is a declaration.
type Function struct {
	Name     string
	Blocks   []*BasicBlock
	Internal bool
}

// NewFunction creates an empty function (a declaration until blocks are added).
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// Entry returns the function's entry block, or nil for a declaration.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// IsDeclaration reports whether the function has no body.
func (f *Function) IsDeclaration() bool {
	return len(f.Blocks) == 0
}

// NewBlock appends a new empty block with the given name and returns it.
func (f *Function) NewBlock(name string) *BasicBlock {
	b := &BasicBlock{Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

// InsertBlockAfter creates a new empty block named name and places it
// immediately after the given block in sequence order. If after is not part
// of the function the block is appended at the end.
func (f *Function) InsertBlockAfter(after *BasicBlock, name string) *BasicBlock {
	b := &BasicBlock{Name: name}
	for i, blk := range f.Blocks {
		if blk == after {
			f.Blocks = append(f.Blocks, nil)
			copy(f.Blocks[i+2:], f.Blocks[i+1:])
			f.Blocks[i+1] = b
			return b
		}
	}
	f.Blocks = append(f.Blocks, b)
	return b
}

// RemoveBlock removes the block from the function's sequence. The entry
// block is never removed.
func (f *Function) RemoveBlock(b *BasicBlock) {
	for i, blk := range f.Blocks {
		if blk == b && i > 0 {
			f.Blocks = append(f.Blocks[:i], f.Blocks[i+1:]...)
			return
		}
	}
}

// UniqueName derives a name from prefix that does not collide with any
// existing block name or instruction destination in the function.
func (f *Function) UniqueName(prefix string) string {
	used := func(name string) bool {
		for _, b := range f.Blocks {
			if b.Name == name {
				return true
			}
			for _, ins := range b.Instrs {
				if ins.Dest == name {
					return true
				}
			}
		}
		return false
	}
	if !used(prefix) {
		return prefix
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%d", prefix, i)
		if !used(name) {
			return name
		}
	}
}

// BasicBlock is a maximal straight-line instruction sequence ending in
// exactly one terminator. Block identity (the pointer) is stable across
// transforms; only newly created blocks get fresh identities.
type BasicBlock struct {
	Name   string
	Instrs []Instruction
	Term   Terminator
}

// Append adds instructions to the end of the block's body, before the
// terminator.
func (b *BasicBlock) Append(ins ...Instruction) {
	b.Instrs = append(b.Instrs, ins...)
}

// Prepend inserts instructions at the start of the block's body.
func (b *BasicBlock) Prepend(ins ...Instruction) {
	b.Instrs = append(ins, b.Instrs...)
}

// SetTerm replaces the block's terminator. The old terminator is discarded
// atomically; terminators carry no value users in this IR, so nothing can
// still refer to it.
func (b *BasicBlock) SetTerm(t Terminator) {
	b.Term = t
}

func (b *BasicBlock) String() string {
	var sb strings.Builder
	writeBlock(&sb, b)
	return sb.String()
}
