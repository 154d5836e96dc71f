// Package compiler lowers an ast.Program to a bytecode.Chunk, resolving
// every identifier through a symtab.Table and emitting through an
// emit.Emitter.
package compiler

import (
	"errors"

	"github.com/pl0-lang/pl0/ast"
	"github.com/pl0-lang/pl0/bytecode"
	"github.com/pl0-lang/pl0/emit"
	"github.com/pl0-lang/pl0/symtab"
	"github.com/pl0-lang/pl0/token"
)

// ErrInvalidProgram is returned when Compile is asked to compile a
// program the parser already flagged as syntactically invalid.
var ErrInvalidProgram = errors.New("compiler: program has syntax errors")

// Compiler walks a parsed program once, emitting instructions as it goes.
type Compiler struct {
	emitter *emit.Emitter
	symbols *symtab.Table
	errs    []error
}

// Compile lowers prog to a Chunk. It returns every compiler-stage fault
// found in a single pass, joined as Errors, rather than stopping at the
// first one.
func Compile(prog *ast.Program) (bytecode.Chunk, error) {
	if prog.Invalid {
		return nil, ErrInvalidProgram
	}

	c := &Compiler{
		emitter: emit.New(),
		symbols: symtab.New(),
	}
	c.compileBlock(prog.Block)

	if len(c.errs) > 0 {
		return nil, Errors(c.errs)
	}
	return c.emitter.Chunk(), nil
}

func (c *Compiler) errorf(pos token.Position, err error) {
	c.errs = append(c.errs, &Error{Pos: pos, Err: err})
}

// compileBlock performs the eight-step schedule every block (the
// program root, and each procedure body) follows:
//
//  1. reserve this block's entry jump
//  2. declare its constants
//  3. declare its variables
//  4. enter and recursively compile each nested procedure
//  5. patch the entry jump to the block's own code, past its procedures
//  6. emit the frame-growing IncTop
//  7. compile the body statement
//  8. emit Return
func (c *Compiler) compileBlock(block *ast.Block) {
	entryJump := c.emitter.Reserve(bytecode.OpJump)

	for _, cd := range block.Consts {
		c.symbols.EnterConst(cd.Name, cd.Value)
	}
	for _, vd := range block.Vars {
		c.symbols.EnterVar(vd.Name)
	}

	for _, pd := range block.Procs {
		addr := c.emitter.Here()
		c.symbols.EnterProc(pd.Name, addr)
		symtab.WithBlock(c.symbols, func() error {
			c.compileBlock(pd.Body)
			return nil
		})
	}

	c.emitter.Patch(entryJump, c.emitter.Here())
	c.emitter.EmitIncTop(c.symbols.FrameSize())
	c.compileStatement(block.Stmt)
	c.emitter.EmitReturn()
}

// levelDelta returns the number of static-link hops between the
// current lexical level and declLevel, the value an OpLoad / OpStore /
// OpCall instruction's L field carries.
func (c *Compiler) levelDelta(declLevel int) uint8 {
	return uint8(c.symbols.Level() - declLevel)
}

func (c *Compiler) compileStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		c.compileAssign(s)
	case *ast.CallStmt:
		c.compileCall(s)
	case *ast.ReadStmt:
		c.compileRead(s)
	case *ast.WriteStmt:
		c.compileExpr(s.Expr)
		c.emitter.EmitWrite()
	case *ast.BeginStmt:
		for _, inner := range s.Stmts {
			c.compileStatement(inner)
		}
	case *ast.IfStmt:
		c.compileCondition(s.Cond)
		skip := c.emitter.Reserve(bytecode.OpJumpIfZero)
		c.compileStatement(s.Then)
		c.emitter.Patch(skip, c.emitter.Here())
	case *ast.WhileStmt:
		top := c.emitter.Here()
		c.compileCondition(s.Cond)
		exit := c.emitter.Reserve(bytecode.OpJumpIfZero)
		c.compileStatement(s.Do)
		c.emitter.EmitJump(top)
		c.emitter.Patch(exit, c.emitter.Here())
	case *ast.EmptyStmt:
		// nothing to emit
	default:
		panic("compiler: unhandled statement node")
	}
}

func (c *Compiler) compileAssign(s *ast.AssignStmt) {
	entry, ok := c.symbols.Resolve(s.Name)
	if !ok {
		c.errorf(s.Pos, UndefinedError{Name: s.Name})
		c.compileExpr(s.Expr)
		return
	}
	v, ok := entry.(symtab.Variable)
	if !ok {
		c.errorf(s.Pos, WrongKindError{Name: s.Name, Want: "cannot be assigned to", Got: entryKind(entry)})
		c.compileExpr(s.Expr)
		return
	}
	c.compileExpr(s.Expr)
	c.emitter.EmitStore(c.levelDelta(v.Level), v.Offset)
}

func (c *Compiler) compileCall(s *ast.CallStmt) {
	entry, ok := c.symbols.Resolve(s.Name)
	if !ok {
		c.errorf(s.Pos, UndefinedError{Name: s.Name})
		return
	}
	p, ok := entry.(symtab.Procedure)
	if !ok {
		c.errorf(s.Pos, WrongKindError{Name: s.Name, Want: "cannot be called", Got: entryKind(entry)})
		return
	}
	c.emitter.EmitCall(c.levelDelta(p.Level), p.Addr)
}

func (c *Compiler) compileRead(s *ast.ReadStmt) {
	entry, ok := c.symbols.Resolve(s.Name)
	if !ok {
		c.errorf(s.Pos, UndefinedError{Name: s.Name})
		c.emitter.EmitRead()
		return
	}
	v, ok := entry.(symtab.Variable)
	if !ok {
		c.errorf(s.Pos, WrongKindError{Name: s.Name, Want: "cannot be read into", Got: entryKind(entry)})
		c.emitter.EmitRead()
		return
	}
	c.emitter.EmitRead()
	c.emitter.EmitStore(c.levelDelta(v.Level), v.Offset)
}

func (c *Compiler) compileCondition(cond ast.Cond) {
	switch cc := cond.(type) {
	case *ast.OddCond:
		c.compileExpr(cc.Expr)
		c.emitter.EmitMath(bytecode.MathOdd)
	case *ast.BinaryCond:
		c.compileExpr(cc.Left)
		c.compileExpr(cc.Right)
		c.emitter.EmitMath(condMathOp(cc.Op))
	default:
		panic("compiler: unhandled condition node")
	}
}

func condMathOp(op ast.CondOp) bytecode.MathOp {
	switch op {
	case ast.CondEq:
		return bytecode.MathEq
	case ast.CondNeq:
		return bytecode.MathNeq
	case ast.CondLt:
		return bytecode.MathLt
	case ast.CondLe:
		return bytecode.MathLe
	case ast.CondGt:
		return bytecode.MathGt
	case ast.CondGe:
		return bytecode.MathGe
	default:
		panic("compiler: unhandled condition operator")
	}
}

func (c *Compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		c.emitter.EmitLit(e.Value)
	case *ast.IdentExpr:
		c.compileIdent(e)
	case *ast.UnaryExpr:
		c.compileExpr(e.Expr)
		if e.Negative {
			c.emitter.EmitMath(bytecode.MathNeg)
		}
	case *ast.BinaryExpr:
		c.compileExpr(e.Left)
		c.compileExpr(e.Right)
		c.emitter.EmitMath(exprMathOp(e.Op))
	default:
		panic("compiler: unhandled expression node")
	}
}

func (c *Compiler) compileIdent(e *ast.IdentExpr) {
	entry, ok := c.symbols.Resolve(e.Name)
	if !ok {
		c.errorf(e.Pos, UndefinedError{Name: e.Name})
		c.emitter.EmitLit(0)
		return
	}
	switch v := entry.(type) {
	case symtab.Const:
		c.emitter.EmitLit(v.Value)
	case symtab.Variable:
		c.emitter.EmitLoad(c.levelDelta(v.Level), v.Offset)
	case symtab.Procedure:
		c.errorf(e.Pos, WrongKindError{Name: e.Name, Want: "cannot be used in an expression", Got: KindProcedure})
		c.emitter.EmitLit(0)
	}
}

func exprMathOp(op ast.ExprOp) bytecode.MathOp {
	switch op {
	case ast.ExprAdd:
		return bytecode.MathAdd
	case ast.ExprSub:
		return bytecode.MathSub
	case ast.ExprMul:
		return bytecode.MathMul
	case ast.ExprDiv:
		return bytecode.MathDiv
	default:
		panic("compiler: unhandled expression operator")
	}
}

func entryKind(entry symtab.Entry) Kind {
	switch entry.(type) {
	case symtab.Const:
		return KindConst
	case symtab.Variable:
		return KindVariable
	case symtab.Procedure:
		return KindProcedure
	default:
		panic("compiler: unhandled symbol table entry")
	}
}
