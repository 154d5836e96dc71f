// Package ast defines the abstract syntax tree produced by the parser
// and consumed by the compiler.
package ast

import "github.com/pl0-lang/pl0/token"

// Program is the root of a parsed source file.
type Program struct {
	Block *Block
	// Invalid is set when the parser recovered from a syntax error.
	// The compiler refuses to compile an invalid program.
	Invalid bool
}

// ConstDecl is one "ident = num" entry in a const declaration.
type ConstDecl struct {
	Name  string
	Value int32
	Pos   token.Position
}

// VarDecl is one identifier in a var declaration.
type VarDecl struct {
	Name string
	Pos  token.Position
}

// ProcDecl is a nested "procedure ident; block ;" declaration.
type ProcDecl struct {
	Name string
	Body *Block
	Pos  token.Position
}

// Block is the body of a program or procedure: declarations followed
// by a single statement.
type Block struct {
	Consts []ConstDecl
	Vars   []VarDecl
	Procs  []ProcDecl
	Stmt   Stmt
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Position() token.Position
}

// AssignStmt is "ident := expression".
type AssignStmt struct {
	Name string
	Expr Expr
	Pos  token.Position
}

// CallStmt is "call ident".
type CallStmt struct {
	Name string
	Pos  token.Position
}

// ReadStmt is "read ident" / "? ident".
type ReadStmt struct {
	Name string
	Pos  token.Position
}

// WriteStmt is "write expression" / "! expression".
type WriteStmt struct {
	Expr Expr
	Pos  token.Position
}

// BeginStmt is "begin statement {; statement} end".
type BeginStmt struct {
	Stmts []Stmt
	Pos   token.Position
}

// IfStmt is "if condition then statement". There is no else branch.
type IfStmt struct {
	Cond Cond
	Then Stmt
	Pos  token.Position
}

// WhileStmt is "while condition do statement".
type WhileStmt struct {
	Cond Cond
	Do   Stmt
	Pos  token.Position
}

// EmptyStmt is the empty statement production (ε).
type EmptyStmt struct {
	Pos token.Position
}

func (*AssignStmt) stmtNode() {}
func (*CallStmt) stmtNode()   {}
func (*ReadStmt) stmtNode()   {}
func (*WriteStmt) stmtNode()  {}
func (*BeginStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*EmptyStmt) stmtNode()  {}

func (s *AssignStmt) Position() token.Position { return s.Pos }
func (s *CallStmt) Position() token.Position   { return s.Pos }
func (s *ReadStmt) Position() token.Position   { return s.Pos }
func (s *WriteStmt) Position() token.Position  { return s.Pos }
func (s *BeginStmt) Position() token.Position  { return s.Pos }
func (s *IfStmt) Position() token.Position     { return s.Pos }
func (s *WhileStmt) Position() token.Position  { return s.Pos }
func (s *EmptyStmt) Position() token.Position  { return s.Pos }

// CondOp enumerates the binary comparison operators a condition may use.
type CondOp int

const (
	CondEq CondOp = iota
	CondNeq
	CondLt
	CondLe
	CondGt
	CondGe
)

// Cond is implemented by every condition node: "odd e" or "e1 op e2".
type Cond interface {
	condNode()
	Position() token.Position
}

// OddCond is "odd expression".
type OddCond struct {
	Expr Expr
	Pos  token.Position
}

// BinaryCond is "expression op expression".
type BinaryCond struct {
	Op    CondOp
	Left  Expr
	Right Expr
	Pos   token.Position
}

func (*OddCond) condNode()    {}
func (*BinaryCond) condNode() {}

func (c *OddCond) Position() token.Position    { return c.Pos }
func (c *BinaryCond) Position() token.Position { return c.Pos }

// ExprOp enumerates the binary arithmetic operators an expression may use.
type ExprOp int

const (
	ExprAdd ExprOp = iota
	ExprSub
	ExprMul
	ExprDiv
)

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	Position() token.Position
}

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int32
	Pos   token.Position
}

// IdentExpr is a reference to a const, variable, or (invalidly) a procedure.
type IdentExpr struct {
	Name string
	Pos  token.Position
}

// UnaryExpr is "+e" or "-e".
type UnaryExpr struct {
	Negative bool
	Expr     Expr
	Pos      token.Position
}

// BinaryExpr is "lhs op rhs" at either expression or term precedence.
type BinaryExpr struct {
	Op    ExprOp
	Left  Expr
	Right Expr
	Pos   token.Position
}

func (*NumberExpr) exprNode() {}
func (*IdentExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}

func (e *NumberExpr) Position() token.Position { return e.Pos }
func (e *IdentExpr) Position() token.Position  { return e.Pos }
func (e *UnaryExpr) Position() token.Position  { return e.Pos }
func (e *BinaryExpr) Position() token.Position { return e.Pos }
