// Package parser implements a recursive-descent parser that turns a
// token stream into an ast.Program.
package parser

import (
	"fmt"

	"github.com/pl0-lang/pl0/ast"
	"github.com/pl0-lang/pl0/lexer"
	"github.com/pl0-lang/pl0/token"
)

// Error is a parser-stage diagnostic.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser error: %s (%s)", e.Msg, e.Pos)
}

func (e *Error) Stage() string { return "parser" }

// Parser consumes tokens from a lexer.Lexer and builds an ast.Program.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token

	Errors []error
}

// New returns a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.Errors = append(p.Errors, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it has kind k, else records an
// error and leaves the cursor in place.
func (p *Parser) expect(k token.Kind) token.Token {
	t := p.cur
	if t.Kind != k {
		p.errorf(t.Pos, "expected %s, got %s", k, describeToken(t))
		return t
	}
	p.advance()
	return t
}

func describeToken(t token.Token) string {
	if t.Kind == token.IDENT || t.Kind == token.NUMBER {
		return t.String()
	}
	return t.Kind.String()
}

// synchronize skips tokens up to (but not including) the next ';' or
// 'end', the recovery point spec.md's error-handling design allows.
// The enclosing begin..end loop then consumes that token itself.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.SEMI || p.cur.Kind == token.END {
			return
		}
		p.advance()
	}
}

// Parse parses a complete "block '.'" program.
func Parse(src string) (*ast.Program, []error) {
	lex := lexer.New(src)
	p := New(lex)
	block := p.parseBlock()
	p.expect(token.PERIOD)

	var errs []error
	errs = append(errs, lex.Errors...)
	errs = append(errs, p.Errors...)

	return &ast.Program{Block: block, Invalid: len(errs) > 0}, errs
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}

	if p.cur.Kind == token.CONST {
		p.advance()
		for {
			name := p.expect(token.IDENT)
			p.expect(token.EQ)
			num := p.expect(token.NUMBER)
			block.Consts = append(block.Consts, ast.ConstDecl{Name: name.Text, Value: num.Value, Pos: name.Pos})
			if p.cur.Kind != token.COMMA {
				break
			}
			p.advance()
		}
		p.expect(token.SEMI)
	}

	if p.cur.Kind == token.VAR {
		p.advance()
		for {
			name := p.expect(token.IDENT)
			block.Vars = append(block.Vars, ast.VarDecl{Name: name.Text, Pos: name.Pos})
			if p.cur.Kind != token.COMMA {
				break
			}
			p.advance()
		}
		p.expect(token.SEMI)
	}

	for p.cur.Kind == token.PROCEDURE {
		pos := p.cur.Pos
		p.advance()
		name := p.expect(token.IDENT)
		p.expect(token.SEMI)
		body := p.parseBlock()
		p.expect(token.SEMI)
		block.Procs = append(block.Procs, ast.ProcDecl{Name: name.Text, Body: body, Pos: pos})
	}

	block.Stmt = p.parseStatement()
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.IDENT:
		pos := p.cur.Pos
		name := p.cur.Text
		p.advance()
		p.expect(token.ASSIGN)
		expr := p.parseExpression()
		return &ast.AssignStmt{Name: name, Expr: expr, Pos: pos}

	case token.CALL:
		pos := p.cur.Pos
		p.advance()
		name := p.expect(token.IDENT)
		return &ast.CallStmt{Name: name.Text, Pos: pos}

	case token.READ, token.QMARK:
		pos := p.cur.Pos
		p.advance()
		name := p.expect(token.IDENT)
		return &ast.ReadStmt{Name: name.Text, Pos: pos}

	case token.WRITE, token.BANG:
		pos := p.cur.Pos
		p.advance()
		expr := p.parseExpression()
		return &ast.WriteStmt{Expr: expr, Pos: pos}

	case token.BEGIN:
		pos := p.cur.Pos
		p.advance()
		var stmts []ast.Stmt
		stmts = append(stmts, p.recoverableStatement())
		for p.cur.Kind == token.SEMI {
			p.advance()
			stmts = append(stmts, p.recoverableStatement())
		}
		p.expect(token.END)
		return &ast.BeginStmt{Stmts: stmts, Pos: pos}

	case token.IF:
		pos := p.cur.Pos
		p.advance()
		cond := p.parseCondition()
		p.expect(token.THEN)
		then := p.parseStatement()
		return &ast.IfStmt{Cond: cond, Then: then, Pos: pos}

	case token.WHILE:
		pos := p.cur.Pos
		p.advance()
		cond := p.parseCondition()
		p.expect(token.DO)
		do := p.parseStatement()
		return &ast.WhileStmt{Cond: cond, Do: do, Pos: pos}

	default:
		return &ast.EmptyStmt{Pos: p.cur.Pos}
	}
}

// recoverableStatement parses one statement inside a begin..end block,
// synchronizing to the next ';' or 'end' on error so the rest of the
// block can still be checked.
func (p *Parser) recoverableStatement() ast.Stmt {
	before := len(p.Errors)
	stmt := p.parseStatement()
	if len(p.Errors) > before {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseCondition() ast.Cond {
	pos := p.cur.Pos
	if p.cur.Kind == token.ODD {
		p.advance()
		expr := p.parseExpression()
		return &ast.OddCond{Expr: expr, Pos: pos}
	}

	left := p.parseExpression()
	var op ast.CondOp
	switch p.cur.Kind {
	case token.EQ:
		op = ast.CondEq
	case token.HASH:
		op = ast.CondNeq
	case token.LT:
		op = ast.CondLt
	case token.LE:
		op = ast.CondLe
	case token.GT:
		op = ast.CondGt
	case token.GE:
		op = ast.CondGe
	default:
		p.errorf(p.cur.Pos, "expected a comparison operator, got %s", describeToken(p.cur))
		return &ast.BinaryCond{Op: ast.CondEq, Left: left, Right: left, Pos: pos}
	}
	p.advance()
	right := p.parseExpression()
	return &ast.BinaryCond{Op: op, Left: left, Right: right, Pos: pos}
}

func (p *Parser) parseExpression() ast.Expr {
	pos := p.cur.Pos
	var expr ast.Expr
	switch p.cur.Kind {
	case token.MINUS:
		p.advance()
		expr = &ast.UnaryExpr{Negative: true, Expr: p.parseTerm(), Pos: pos}
	case token.PLUS:
		p.advance()
		expr = &ast.UnaryExpr{Negative: false, Expr: p.parseTerm(), Pos: pos}
	default:
		expr = p.parseTerm()
	}

	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := ast.ExprAdd
		if p.cur.Kind == token.MINUS {
			op = ast.ExprSub
		}
		opPos := p.cur.Pos
		p.advance()
		rhs := p.parseTerm()
		expr = &ast.BinaryExpr{Op: op, Left: expr, Right: rhs, Pos: opPos}
	}
	return expr
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	for p.cur.Kind == token.STAR || p.cur.Kind == token.SLASH {
		op := ast.ExprMul
		if p.cur.Kind == token.SLASH {
			op = ast.ExprDiv
		}
		opPos := p.cur.Pos
		p.advance()
		rhs := p.parseFactor()
		expr = &ast.BinaryExpr{Op: op, Left: expr, Right: rhs, Pos: opPos}
	}
	return expr
}

func (p *Parser) parseFactor() ast.Expr {
	switch p.cur.Kind {
	case token.IDENT:
		t := p.cur
		p.advance()
		return &ast.IdentExpr{Name: t.Text, Pos: t.Pos}
	case token.NUMBER:
		t := p.cur
		p.advance()
		return &ast.NumberExpr{Value: t.Value, Pos: t.Pos}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	default:
		pos := p.cur.Pos
		p.errorf(pos, "expected an identifier, number, or '(', got %s", describeToken(p.cur))
		p.advance()
		return &ast.NumberExpr{Value: 0, Pos: pos}
	}
}
