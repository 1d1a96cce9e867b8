// Package query implements the filter language used by collection rules: a
// single SQL-like WHERE clause of AND-joined comparisons over typed catalog
// attributes. Parsing establishes all type safety up front, so evaluating a
// parsed query can never fail.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a comparison operator in a condition.
type Operator int

const (
	OpInvalid Operator = iota
	OpEq
	OpNe
	OpGt
	OpLt
	OpGe
	OpLe
	OpLike
)

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	case OpLike:
		return "LIKE"
	default:
		return "invalid"
	}
}

// ordering reports whether the operator compares magnitude rather than
// equality. Ordering operators are only valid on integer fields.
func (o Operator) ordering() bool {
	switch o {
	case OpGt, OpLt, OpGe, OpLe:
		return true
	}
	return false
}

// Value is a typed literal from a query string.
type Value struct {
	Type Type
	Bool bool
	Str  string
	Int  int
}

func (v Value) String() string {
	switch v.Type {
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	case TypeString:
		return strconv.Quote(v.Str)
	case TypeInt:
		return strconv.Itoa(v.Int)
	default:
		return "invalid"
	}
}

// Condition is one field-operator-value clause.
type Condition struct {
	Field Field
	Op    Operator
	Value Value
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field.Name, c.Op, c.Value)
}

// Query is an ordered, non-empty list of conditions joined by AND.
// Evaluation proceeds left to right.
type Query struct {
	Conditions []Condition
}

// String renders the query in canonical form, without the WHERE keyword.
func (q *Query) String() string {
	parts := make([]string, len(q.Conditions))
	for i, c := range q.Conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// Compile tokenizes and parses a raw query string.
func Compile(raw string) (*Query, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}
