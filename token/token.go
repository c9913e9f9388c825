// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package token defines the lexical elements of assembly source text.
//
// A Token is an immutable value: its kind, its lexeme, where it came from,
// and its position in the token stream. Tokens synthesized while substituting
// equates or expanding macros carry negative ids, allocated from the Context
// of the compile that created them.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the lexical class of a token.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_WHITESPACE = Kind(0)  // whitespace
	KIND_NEWLINE    = Kind(1)  // newline
	KIND_SYMBOL     = Kind(2)  // symbol
	KIND_WORD       = Kind(3)  // word
	KIND_REGISTER   = Kind(4)  // register
	KIND_BIN        = Kind(5)  // bin
	KIND_HEX        = Kind(6)  // hex
	KIND_DEC        = Kind(7)  // dec
	KIND_UDEC       = Kind(8)  // udec
	KIND_STRING     = Kind(9)  // string
	KIND_CHAR       = Kind(10) // char
	KIND_EXPRESSION = Kind(11) // expression
)

// Constant returns true for kinds that evaluate to a number.
func (k Kind) Constant() bool {
	switch k {
	case KIND_BIN, KIND_HEX, KIND_DEC, KIND_UDEC, KIND_CHAR, KIND_EXPRESSION:
		return true
	}
	return false
}

// Space returns true for whitespace.
func (k Kind) Space() bool {
	return k == KIND_WHITESPACE
}

// Location is where a token was found.
type Location struct {
	File   string // Source file name.
	Line   int    // 1-based line.
	Column int    // 1-based column of the first character.
	End    int    // 1-based column after the last character.
}

func (loc Location) String() string {
	if len(loc.File) == 0 {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// Evaluator computes the value of a composite expression token.
type Evaluator interface {
	Evaluate() (value int64, err error)
}

// Token is a single lexeme.
type Token struct {
	Kind Kind
	Text string
	Loc  Location
	Id   int       // Stream position; negative for synthesized tokens.
	Expr Evaluator // Set for KIND_EXPRESSION.
}

// Synthetic returns true if the token was created by a substitution.
func (tok Token) Synthetic() bool {
	return tok.Id < 0
}

// Is returns true if the token is the symbol or word text, case insensitively.
func (tok Token) Is(text string) bool {
	return strings.EqualFold(tok.Text, text)
}

func (tok Token) String() string {
	return fmt.Sprintf("%v %v %q", tok.Loc, tok.Kind, tok.Text)
}

// digits strips the radix prefix of a constant.
func (tok Token) digits(syntax *Syntax) (digits string, base int) {
	text := tok.Text
	var prefixes []string
	switch tok.Kind {
	case KIND_HEX:
		base = 16
		prefixes = syntax.hexPrefixes()
	case KIND_BIN:
		base = 2
		prefixes = syntax.binPrefixes()
	default:
		base = 10
	}
	for _, prefix := range prefixes {
		if len(text) > len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = text[len(prefix):]
			break
		}
	}
	digits = strings.ReplaceAll(text, "_", "")
	return
}

// Value returns the numeric value of a constant token.
func (tok Token) Value() (value int64, err error) {
	return tok.ValueIn(nil)
}

// ValueIn returns the numeric value of a constant token, stripping the
// radix prefixes of the syntax (the default syntax when nil).
func (tok Token) ValueIn(syntax *Syntax) (value int64, err error) {
	if syntax == nil {
		syntax = &Default
	}

	switch tok.Kind {
	case KIND_HEX, KIND_BIN, KIND_DEC, KIND_UDEC:
		digits, base := tok.digits(syntax)
		value, err = strconv.ParseInt(digits, base, 64)
		if err != nil {
			err = ErrNotConstant(tok.Text)
		}
	case KIND_CHAR:
		var text string
		text, err = strconv.Unquote(tok.Text)
		if err != nil || len(text) != 1 {
			err = ErrNotConstant(tok.Text)
			return
		}
		value = int64(text[0])
	case KIND_EXPRESSION:
		if tok.Expr == nil {
			err = ErrNotConstant(tok.Text)
			return
		}
		value, err = tok.Expr.Evaluate()
	default:
		err = ErrNotConstant(tok.Text)
	}

	return
}

// SizeOf returns the number of bytes needed to hold value. Negative values
// are sized as two's complement.
func SizeOf(value int64) (size int) {
	size = 1
	if value < 0 {
		for value < -(int64(1) << (8*size - 1)) {
			size++
		}
		return
	}
	for size < 8 && uint64(value) >= uint64(1)<<(8*size) {
		size++
	}
	return
}

// Size returns the byte width of a constant token. Hex and binary constants
// are at least as wide as their written digits, so `$0010` is two bytes.
func (tok Token) Size(syntax *Syntax) (size int, err error) {
	if syntax == nil {
		syntax = &Default
	}

	value, err := tok.ValueIn(syntax)
	if err != nil {
		return
	}

	size = SizeOf(value)

	digits, _ := tok.digits(syntax)
	switch tok.Kind {
	case KIND_HEX:
		if written := (len(digits) + 1) / 2; written > size {
			size = written
		}
	case KIND_BIN:
		if written := (len(digits) + 7) / 8; written > size {
			size = written
		}
	}

	return
}

// Unquote returns the contents of a string or character literal.
func (tok Token) Unquote() (text string, err error) {
	if tok.Kind != KIND_STRING && tok.Kind != KIND_CHAR {
		err = ErrNotString(tok.Text)
		return
	}
	text, err = strconv.Unquote(tok.Text)
	if err != nil {
		err = ErrNotString(tok.Text)
	}
	return
}

// Join returns the source text of a token run.
func Join(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Trim removes leading and trailing whitespace tokens.
func Trim(tokens []Token) []Token {
	for len(tokens) > 0 && tokens[0].Kind.Space() {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].Kind.Space() {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// Line returns the tokens up to (not including) the next newline, and the
// remainder starting at that newline.
func Line(tokens []Token) (line []Token, rest []Token) {
	for n, tok := range tokens {
		if tok.Kind == KIND_NEWLINE {
			return tokens[:n], tokens[n:]
		}
	}
	return tokens, nil
}
