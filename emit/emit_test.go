package emit

import (
	"testing"

	"github.com/pl0-lang/pl0/bytecode"
)

func TestEmitReturnsSequentialAddresses(t *testing.T) {
	e := New()
	a0 := e.EmitLit(1)
	a1 := e.EmitLit(2)
	if a0 != 0 || a1 != 1 {
		t.Fatalf("got addresses %d, %d, want 0, 1", a0, a1)
	}
	if e.Here() != 2 {
		t.Fatalf("Here() = %d, want 2", e.Here())
	}
}

func TestReserveAndPatch(t *testing.T) {
	e := New()
	jump := e.Reserve(bytecode.OpJump)
	e.EmitLit(1)
	target := e.Here()
	e.Patch(jump, target)

	chunk := e.Chunk()
	if chunk[jump].A != int32(target) {
		t.Fatalf("patched jump target = %d, want %d", chunk[jump].A, target)
	}
}

func TestPatchNonJumpPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r != ErrNotAJump {
			t.Fatalf("recovered %v, want ErrNotAJump", r)
		}
	}()
	e := New()
	lit := e.EmitLit(1)
	e.Patch(lit, 0)
}

func TestConvenienceWrappersProduceExpectedInstructions(t *testing.T) {
	e := New()
	e.EmitLoad(1, 3)
	e.EmitStore(0, 4)
	e.EmitMath(bytecode.MathAdd)
	e.EmitCall(2, 10)
	e.EmitReturn()
	e.EmitWrite()
	e.EmitRead()
	e.EmitIncTop(5)

	want := []bytecode.Instruction{
		{Op: bytecode.OpLoad, L: 1, A: 3},
		{Op: bytecode.OpStore, L: 0, A: 4},
		{Op: bytecode.OpMath, A: int32(bytecode.MathAdd)},
		{Op: bytecode.OpCall, L: 2, A: 10},
		{Op: bytecode.OpReturn},
		{Op: bytecode.OpWrite},
		{Op: bytecode.OpRead},
		{Op: bytecode.OpIncTop, A: 5},
	}
	chunk := e.Chunk()
	if len(chunk) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(chunk), len(want))
	}
	for i, w := range want {
		if chunk[i] != w {
			t.Errorf("instruction %d = %#v, want %#v", i, chunk[i], w)
		}
	}
}
