package query

import (
	"strings"
	"unicode"
)

// TokenKind discriminates lexical token classes.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenString
	TokenInt
	TokenBool
	TokenOperator
	TokenAnd
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenInt:
		return "integer"
	case TokenBool:
		return "boolean"
	case TokenOperator:
		return "operator"
	case TokenAnd:
		return "AND"
	default:
		return "invalid"
	}
}

// Token is one lexical element of a query string. Text holds the token as
// written, except for strings where the quotes are removed.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // byte offset of the token start in the raw query
}

// Tokenize splits a raw query string into tokens. A leading WHERE keyword
// (any case) is stripped. The keywords AND and LIKE and the boolean literals
// are matched case-insensitively. Unterminated strings and unrecognized
// characters fail with a SyntaxError carrying the offset.
func Tokenize(raw string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '"':
			end := strings.IndexByte(raw[i+1:], '"')
			if end < 0 {
				return nil, &SyntaxError{Pos: i, Text: raw[i:], Msg: "unterminated string"}
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: raw[i+1 : i+1+end], Pos: i})
			i += end + 2

		case c == '!':
			if i+1 >= len(raw) || raw[i+1] != '=' {
				return nil, &SyntaxError{Pos: i, Text: string(c), Msg: "expected '=' after '!'"}
			}
			tokens = append(tokens, Token{Kind: TokenOperator, Text: "!=", Pos: i})
			i += 2

		case c == '>' || c == '<':
			op := string(c)
			if i+1 < len(raw) && raw[i+1] == '=' {
				op += "="
			}
			tokens = append(tokens, Token{Kind: TokenOperator, Text: op, Pos: i})
			i += len(op)

		case c == '=':
			tokens = append(tokens, Token{Kind: TokenOperator, Text: "=", Pos: i})
			i++

		case c >= '0' && c <= '9':
			j := i
			for j < len(raw) && raw[j] >= '0' && raw[j] <= '9' {
				j++
			}
			tokens = append(tokens, Token{Kind: TokenInt, Text: raw[i:j], Pos: i})
			i = j

		case isIdentStart(c):
			j := i
			for j < len(raw) && isIdentPart(raw[j]) {
				j++
			}
			word := raw[i:j]
			tokens = append(tokens, Token{Kind: wordKind(word), Text: word, Pos: i})
			i = j

		default:
			end := i
			for end < len(raw) && !unicode.IsSpace(rune(raw[end])) {
				end++
			}
			return nil, &SyntaxError{Pos: i, Text: raw[i:end], Msg: "unrecognized character"}
		}
	}

	// WHERE introduces the clause but carries no meaning of its own.
	if len(tokens) > 0 && tokens[0].Kind == TokenIdent && strings.EqualFold(tokens[0].Text, "WHERE") {
		tokens = tokens[1:]
	}
	return tokens, nil
}

func wordKind(word string) TokenKind {
	switch {
	case strings.EqualFold(word, "AND"):
		return TokenAnd
	case strings.EqualFold(word, "LIKE"):
		return TokenOperator
	case strings.EqualFold(word, "true"), strings.EqualFold(word, "false"):
		return TokenBool
	default:
		return TokenIdent
	}
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
