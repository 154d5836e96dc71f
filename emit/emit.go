// Package emit provides an append-only instruction buffer supporting
// reserve-and-patch for forward jumps, the building block the
// compiler uses to produce a bytecode.Chunk.
package emit

import (
	"errors"

	"github.com/pl0-lang/pl0/bytecode"
)

// ErrNotAJump is the panic value Patch raises when asked to patch an
// instruction other than OpJump / OpJumpIfZero. Patching any other
// opcode is a compiler programming error, not a user-facing fault.
var ErrNotAJump = errors.New("emit: patch target is not a jump instruction")

// Emitter accumulates instructions in execution order.
type Emitter struct {
	buf bytecode.Chunk
}

// New returns an empty Emitter.
func New() *Emitter {
	return &Emitter{}
}

// Here returns the address the next emitted instruction will occupy.
func (e *Emitter) Here() int {
	return len(e.buf)
}

// Emit appends an instruction and returns its address.
func (e *Emitter) Emit(op bytecode.Opcode, l uint8, a int32) int {
	addr := e.Here()
	e.buf = append(e.buf, bytecode.Instruction{Op: op, L: l, A: a})
	return addr
}

// Reserve appends a placeholder (op, 0, 0) instruction and returns its
// index, to be filled in later by Patch once the jump target is known.
func (e *Emitter) Reserve(op bytecode.Opcode) int {
	return e.Emit(op, 0, 0)
}

// Patch sets the A field of the instruction at index to addr. index
// must refer to an OpJump or OpJumpIfZero instruction.
func (e *Emitter) Patch(index int, addr int) {
	instr := &e.buf[index]
	if instr.Op != bytecode.OpJump && instr.Op != bytecode.OpJumpIfZero {
		panic(ErrNotAJump)
	}
	instr.A = int32(addr)
}

// Chunk returns the accumulated instructions.
func (e *Emitter) Chunk() bytecode.Chunk {
	return e.buf
}

// Convenience wrappers so the compiler's call sites read as one
// instruction each.

func (e *Emitter) EmitLit(v int32) int {
	return e.Emit(bytecode.OpLit, 0, v)
}

func (e *Emitter) EmitLoad(l uint8, offset int) int {
	return e.Emit(bytecode.OpLoad, l, int32(offset))
}

func (e *Emitter) EmitStore(l uint8, offset int) int {
	return e.Emit(bytecode.OpStore, l, int32(offset))
}

func (e *Emitter) EmitMath(op bytecode.MathOp) int {
	return e.Emit(bytecode.OpMath, 0, int32(op))
}

func (e *Emitter) EmitCall(l uint8, addr int) int {
	return e.Emit(bytecode.OpCall, l, int32(addr))
}

func (e *Emitter) EmitReturn() int {
	return e.Emit(bytecode.OpReturn, 0, 0)
}

func (e *Emitter) EmitJump(addr int) int {
	return e.Emit(bytecode.OpJump, 0, int32(addr))
}

func (e *Emitter) EmitWrite() int {
	return e.Emit(bytecode.OpWrite, 0, 0)
}

func (e *Emitter) EmitRead() int {
	return e.Emit(bytecode.OpRead, 0, 0)
}

func (e *Emitter) EmitIncTop(count int) int {
	return e.Emit(bytecode.OpIncTop, 0, int32(count))
}
