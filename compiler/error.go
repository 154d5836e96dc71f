package compiler

import (
	"fmt"

	"github.com/pl0-lang/pl0/token"
)

// Error wraps compiler-stage diagnostics with the position in source
// where they were encountered, mirroring the teacher's per-fault
// wrapping of validation errors to a location.
type Error struct {
	Pos token.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("compiler error: %s (%s)", e.Err, e.Pos)
}

func (e *Error) Stage() string { return "compiler" }

func (e *Error) Unwrap() error { return e.Err }

// UndefinedError is returned when an identifier has no binding visible
// at the point of use.
type UndefinedError struct {
	Name string
}

func (e UndefinedError) Error() string {
	return fmt.Sprintf("undefined identifier %q", e.Name)
}

// Kind describes what a symbol table entry actually is, for
// WrongKindError's message.
type Kind string

const (
	KindConst     Kind = "constant"
	KindVariable  Kind = "variable"
	KindProcedure Kind = "procedure"
)

// WrongKindError is returned when an identifier is used in a way its
// declared kind does not support: assigning to a constant, calling a
// variable, or using a procedure in an expression.
type WrongKindError struct {
	Name string
	Want string // free-form description of what was expected
	Got  Kind
}

func (e WrongKindError) Error() string {
	return fmt.Sprintf("%q is a %s, %s", e.Name, e.Got, e.Want)
}

// Errors joins multiple compiler errors into a single error value, the
// way Compile reports every fault found in one pass instead of
// stopping at the first.
type Errors []error

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	s := fmt.Sprintf("%d compiler errors:", len(es))
	for _, e := range es {
		s += "\n  " + e.Error()
	}
	return s
}
