package query

import (
	"strconv"
	"strings"
)

// Parse builds a Query from a token stream, validating the grammar and the
// operator and literal types of every condition against the field registry.
// Parsing is pure: identical tokens always produce an identical Query or an
// identical error.
//
// Grammar:
//
//	query     := condition (AND condition)*
//	condition := FIELD operator value
//	operator  := "=" | "!=" | ">" | "<" | ">=" | "<=" | "LIKE"
//	value     := BOOL | STRING | INTEGER
func Parse(tokens []Token) (*Query, error) {
	if len(tokens) == 0 {
		return nil, &SyntaxError{Pos: 0, Msg: "empty query"}
	}
	p := &parser{tokens: tokens}

	q := &Query{}
	for {
		cond, err := p.condition()
		if err != nil {
			return nil, err
		}
		q.Conditions = append(q.Conditions, cond)

		tok, ok := p.next()
		if !ok {
			return q, nil
		}
		if tok.Kind != TokenAnd {
			return nil, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "expected AND or end of query"}
		}
	}
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) next() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// end returns the offset just past the last consumed token, for errors
// reported at end of input.
func (p *parser) end() int {
	if p.pos == 0 {
		return 0
	}
	prev := p.tokens[p.pos-1]
	return prev.Pos + len(prev.Text)
}

func (p *parser) condition() (Condition, error) {
	tok, ok := p.next()
	if !ok {
		return Condition{}, &SyntaxError{Pos: p.end(), Msg: "expected a condition"}
	}
	if tok.Kind != TokenIdent {
		return Condition{}, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "expected a field name"}
	}
	field, ok := LookupField(tok.Text)
	if !ok {
		return Condition{}, &UnknownFieldError{Field: tok.Text}
	}

	op, err := p.operator()
	if err != nil {
		return Condition{}, err
	}
	if op == OpLike && field.Type != TypeString {
		return Condition{}, &TypeMismatchError{Field: field.Name, Op: op, Want: field.Type}
	}
	if op.ordering() && field.Type != TypeInt {
		return Condition{}, &TypeMismatchError{Field: field.Name, Op: op, Want: field.Type}
	}

	val, err := p.value()
	if err != nil {
		return Condition{}, err
	}
	if val.Type != field.Type {
		return Condition{}, &TypeMismatchError{Field: field.Name, Op: op, Want: field.Type, Got: val.Type}
	}

	return Condition{Field: field, Op: op, Value: val}, nil
}

func (p *parser) operator() (Operator, error) {
	tok, ok := p.next()
	if !ok {
		return OpInvalid, &SyntaxError{Pos: p.end(), Msg: "expected an operator"}
	}
	if tok.Kind != TokenOperator {
		return OpInvalid, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "expected an operator"}
	}
	switch {
	case tok.Text == "=":
		return OpEq, nil
	case tok.Text == "!=":
		return OpNe, nil
	case tok.Text == ">":
		return OpGt, nil
	case tok.Text == "<":
		return OpLt, nil
	case tok.Text == ">=":
		return OpGe, nil
	case tok.Text == "<=":
		return OpLe, nil
	case strings.EqualFold(tok.Text, "LIKE"):
		return OpLike, nil
	}
	return OpInvalid, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "unknown operator"}
}

func (p *parser) value() (Value, error) {
	tok, ok := p.next()
	if !ok {
		return Value{}, &SyntaxError{Pos: p.end(), Msg: "expected a value"}
	}
	switch tok.Kind {
	case TokenString:
		return Value{Type: TypeString, Str: tok.Text}, nil
	case TokenBool:
		return Value{Type: TypeBool, Bool: strings.EqualFold(tok.Text, "true")}, nil
	case TokenInt:
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			return Value{}, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "integer out of range"}
		}
		return Value{Type: TypeInt, Int: n}, nil
	default:
		return Value{}, &SyntaxError{Pos: tok.Pos, Text: tok.Text, Msg: "expected a value"}
	}
}
