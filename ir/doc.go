// Package ir provides the in-memory intermediate representation consumed
// by the obfuscation passes: modules, functions, basic blocks, instructions,
// and terminators, together with CFG traversal helpers and a small reference
// interpreter used to check behavior preservation.
//
// A Function owns its blocks exclusively. A BasicBlock holds its ordered
// instruction list and exactly one Terminator, stored separately from the
// instructions so that replacing a terminator is a single atomic assignment
// and inserting "before the terminator" is a plain append.
//
// Terminator is a sealed sum type: a type switch over Jump, CondBr, Switch,
// Return, and Unreachable covers every kind, so adding a terminator kind is
// a compile-time-checked exercise for every consumer.
package ir
