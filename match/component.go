// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package match

import (
	"slices"
	"strings"

	"github.com/ezrec/asm8/token"
)

// Literal matches the exact token text.
type Literal struct {
	Text string
	Fold bool // Compare case insensitively.
}

// Lit matches text exactly.
func Lit(text string) Literal {
	return Literal{Text: text}
}

// FoldLit matches text case insensitively.
func FoldLit(text string) Literal {
	return Literal{Text: text, Fold: true}
}

func (c Literal) Accept(tok token.Token) bool {
	if c.Fold {
		return strings.EqualFold(tok.Text, c.Text)
	}
	return tok.Text == c.Text
}

// Kinds matches any token of the listed kinds.
type Kinds []token.Kind

// Any matches any token of the listed kinds.
func Any(kinds ...token.Kind) Kinds {
	return Kinds(kinds)
}

func (c Kinds) Accept(tok token.Token) bool {
	return slices.Contains(c, tok.Kind)
}

// Word matches any plain word.
var Word = Any(token.KIND_WORD)

// Const matches a constant that fits in Size bytes.
type Const struct {
	Syntax   *token.Syntax
	Size     int
	Unsigned bool // Reject negative values.
}

func (c Const) Accept(tok token.Token) bool {
	if !tok.Kind.Constant() {
		return false
	}
	size, err := tok.Size(c.Syntax)
	if err != nil || size > c.Size {
		return false
	}
	if c.Unsigned {
		value, _ := tok.ValueIn(c.Syntax)
		if value < 0 {
			return false
		}
	}
	return true
}

// Register matches a register token from a register file.
type Register struct {
	Syntax *token.Syntax
	Names  []string // Canonical register names of the file.
}

func (c Register) Accept(tok token.Token) bool {
	if tok.Kind != token.KIND_REGISTER {
		return false
	}
	name, ok := c.Syntax.Register(tok.Text)
	return ok && slices.Contains(c.Names, name)
}

// ConstOrRegister matches either a register of the file or a constant.
type ConstOrRegister struct {
	Const    Const
	Register Register
}

func (c ConstOrRegister) Accept(tok token.Token) bool {
	return c.Register.Accept(tok) || c.Const.Accept(tok)
}

// ConstOrWord matches a constant or a word that may later resolve to a label.
type ConstOrWord struct {
	Const Const
}

func (c ConstOrWord) Accept(tok token.Token) bool {
	return tok.Kind == token.KIND_WORD || c.Const.Accept(tok)
}

// Func adapts a predicate to a Component.
type Func func(tok token.Token) bool

func (c Func) Accept(tok token.Token) bool {
	return c(tok)
}

// Constant matches a constant of any size.
var Constant = Func(func(tok token.Token) bool {
	return tok.Kind.Constant()
})
