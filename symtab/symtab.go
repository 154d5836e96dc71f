// Package symtab implements the level-scoped symbol table the
// compiler consults and mutates while walking the AST.
package symtab

import "github.com/pl0-lang/pl0/bytecode"

// Entry is implemented by the three kinds of declaration the language
// supports.
type Entry interface {
	entryName() string
}

// Const is a compile-time constant binding.
type Const struct {
	Name  string
	Value int32
}

// Variable is a local binding living in a stack frame.
type Variable struct {
	Name   string
	Level  int
	Offset int
}

// Procedure is a nested procedure binding.
type Procedure struct {
	Name  string
	Level int
	Addr  int // entry code address, known before the body is compiled
}

func (e Const) entryName() string     { return e.Name }
func (e Variable) entryName() string  { return e.Name }
func (e Procedure) entryName() string { return e.Name }

// Table is an ordered scope stack: newer entries shadow older ones,
// and Resolve scans from the tail.
type Table struct {
	entries    []Entry
	level      int
	dataOffset int
}

// New returns a Table at the outermost lexical level.
func New() *Table {
	return &Table{level: 0, dataOffset: bytecode.DataOffset}
}

// Level returns the current lexical nesting depth (0 at the outermost
// block).
func (t *Table) Level() int { return t.level }

// EnterConst appends a constant binding to the current scope.
func (t *Table) EnterConst(name string, value int32) {
	t.entries = append(t.entries, Const{Name: name, Value: value})
}

// EnterVar appends a variable binding at the table's current level,
// consuming (and advancing) the running data offset. It panics if the
// offset it is about to hand out would fall inside the block mark, an
// invariant violation rather than a recoverable compile error.
func (t *Table) EnterVar(name string) Variable {
	if t.dataOffset < bytecode.DataOffset {
		panic("symtab: invalid variable offset")
	}
	v := Variable{Name: name, Level: t.level, Offset: t.dataOffset}
	t.dataOffset++
	t.entries = append(t.entries, v)
	return v
}

// EnterProc appends a procedure binding at the table's current level.
// addr is the address of the procedure's own entry jump, known the
// instant before its body is compiled, since that jump is the very
// first instruction a block emits. It is entered before the body is
// compiled so recursive calls within the body resolve.
func (t *Table) EnterProc(name string, addr int) Procedure {
	p := Procedure{Name: name, Level: t.level, Addr: addr}
	t.entries = append(t.entries, p)
	return p
}

// Resolve scans the table tail-to-head for the most recent entry
// matching name. The second return value is false if no such entry
// exists.
func (t *Table) Resolve(name string) (Entry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].entryName() == name {
			return t.entries[i], true
		}
	}
	return nil, false
}

// FrameSize returns DataOffset plus the number of variables declared
// so far at the current level: the total slot count a block's INC_TOP
// must reserve.
func (t *Table) FrameSize() int {
	return t.dataOffset
}

// WithBlock runs fn inside a fresh nested scope: the table's length
// and data offset are saved, the level is incremented and the data
// offset reset to bytecode.DataOffset, fn runs, and on every exit path
// (including an error return) the saved length/offset/level are
// restored, truncating any entries fn declared.
func WithBlock(t *Table, fn func() error) error {
	savedLen := len(t.entries)
	savedOffset := t.dataOffset

	t.level++
	t.dataOffset = bytecode.DataOffset

	defer func() {
		t.entries = t.entries[:savedLen]
		t.dataOffset = savedOffset
		t.level--
	}()

	return fn()
}
