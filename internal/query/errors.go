package query

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed query string. Pos is the byte offset of
// the offending text in the raw query.
type SyntaxError struct {
	Pos  int
	Text string // offending token or remainder, empty at end of input
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("syntax error at offset %d near %q: %s", e.Pos, e.Text, e.Msg)
}

// UnknownFieldError reports a condition on an attribute the catalog does not
// declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q (known fields: %s)", e.Field, strings.Join(FieldNames(), ", "))
}

// TypeMismatchError reports an operator or literal that does not fit the
// field's declared type. Got is TypeInvalid when the operator itself is
// incompatible rather than the literal.
type TypeMismatchError struct {
	Field string
	Op    Operator
	Want  Type
	Got   Type
}

func (e *TypeMismatchError) Error() string {
	if e.Got == TypeInvalid {
		return fmt.Sprintf("operator %s cannot be applied to %s field %q", e.Op, e.Want, e.Field)
	}
	return fmt.Sprintf("field %q takes a %s value, got %s", e.Field, e.Want, e.Got)
}
