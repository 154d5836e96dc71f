package symtab

import (
	"testing"

	"github.com/pl0-lang/pl0/bytecode"
)

func TestEnterConstAndResolve(t *testing.T) {
	tab := New()
	tab.EnterConst("max", 100)

	entry, ok := tab.Resolve("max")
	if !ok {
		t.Fatal("expected max to resolve")
	}
	c, ok := entry.(Const)
	if !ok || c.Value != 100 {
		t.Fatalf("got %#v, want Const{max, 100}", entry)
	}
}

func TestEnterVarAdvancesOffset(t *testing.T) {
	tab := New()
	x := tab.EnterVar("x")
	y := tab.EnterVar("y")

	if x.Offset != bytecode.DataOffset {
		t.Errorf("x.Offset = %d, want %d", x.Offset, bytecode.DataOffset)
	}
	if y.Offset != bytecode.DataOffset+1 {
		t.Errorf("y.Offset = %d, want %d", y.Offset, bytecode.DataOffset+1)
	}
	if got := tab.FrameSize(); got != bytecode.DataOffset+2 {
		t.Errorf("FrameSize() = %d, want %d", got, bytecode.DataOffset+2)
	}
}

func TestResolveShadowing(t *testing.T) {
	tab := New()
	tab.EnterConst("x", 1)

	err := WithBlock(tab, func() error {
		tab.EnterVar("x")
		entry, ok := tab.Resolve("x")
		if !ok {
			t.Fatal("expected x to resolve inside the nested block")
		}
		if _, ok := entry.(Variable); !ok {
			t.Fatalf("expected the inner x to shadow the outer const, got %#v", entry)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithBlock returned an error: %v", err)
	}

	entry, ok := tab.Resolve("x")
	if !ok {
		t.Fatal("expected x to still resolve after the block exits")
	}
	if _, ok := entry.(Const); !ok {
		t.Fatalf("expected the outer const to be visible again, got %#v", entry)
	}
}

func TestWithBlockRestoresLevelAndOffsetOnError(t *testing.T) {
	tab := New()
	tab.EnterVar("outer")
	savedFrameSize := tab.FrameSize()

	sentinel := errSentinel{}
	err := WithBlock(tab, func() error {
		tab.EnterVar("inner")
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("expected WithBlock to propagate the sentinel error, got %v", err)
	}
	if tab.Level() != 0 {
		t.Errorf("Level() = %d after WithBlock returned, want 0", tab.Level())
	}
	if tab.FrameSize() != savedFrameSize {
		t.Errorf("FrameSize() = %d after WithBlock returned, want %d", tab.FrameSize(), savedFrameSize)
	}
	if _, ok := tab.Resolve("inner"); ok {
		t.Error("expected inner's binding to be discarded when the block exits")
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sentinel" }

func TestEnterProcAddrKnownBeforeBodyCompiles(t *testing.T) {
	tab := New()
	// The caller captures the address before descending into the body,
	// exactly as the compiler does for recursive self-calls.
	addr := 42
	p := tab.EnterProc("fact", addr)
	if p.Addr != addr {
		t.Errorf("p.Addr = %d, want %d", p.Addr, addr)
	}
	entry, ok := tab.Resolve("fact")
	if !ok {
		t.Fatal("expected fact to resolve immediately, enabling recursive calls")
	}
	if entry.(Procedure).Addr != addr {
		t.Errorf("resolved Addr = %d, want %d", entry.(Procedure).Addr, addr)
	}
}

func TestLevelNesting(t *testing.T) {
	tab := New()
	if tab.Level() != 0 {
		t.Fatalf("new table level = %d, want 0", tab.Level())
	}
	WithBlock(tab, func() error {
		if tab.Level() != 1 {
			t.Errorf("nested level = %d, want 1", tab.Level())
		}
		return WithBlock(tab, func() error {
			if tab.Level() != 2 {
				t.Errorf("doubly nested level = %d, want 2", tab.Level())
			}
			return nil
		})
	})
	if tab.Level() != 0 {
		t.Errorf("level after exiting both blocks = %d, want 0", tab.Level())
	}
}
