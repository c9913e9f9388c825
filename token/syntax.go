// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package token

import (
	"strings"
)

// Syntax is the per-architecture lexical configuration.
type Syntax struct {
	HexPrefix    []string // Hexadecimal constant prefixes, ie "$" or "0x".
	BinPrefix    []string // Binary constant prefixes, ie "%" or "0b".
	Comment      string   // Comment start marker.
	SubLabel     string   // Sub-label scoping prefix.
	Registers    []string // Register names; nil disables register detection.
	CaseFold     bool     // Mnemonics and registers are case insensitive.
	MultiSymbols []string // Multi-character symbols, longest first.
}

// Default syntax, used when no architecture supplies one.
var Default = Syntax{
	HexPrefix:    []string{"0x"},
	BinPrefix:    []string{"0b"},
	Comment:      ";",
	SubLabel:     ".",
	CaseFold:     true,
	MultiSymbols: []string{"<<", ">>"},
}

func (syntax *Syntax) hexPrefixes() []string {
	return syntax.HexPrefix
}

func (syntax *Syntax) binPrefixes() []string {
	return syntax.BinPrefix
}

// Register returns the canonical register name of a word, if any.
func (syntax *Syntax) Register(word string) (name string, ok bool) {
	for _, reg := range syntax.Registers {
		if reg == word || (syntax.CaseFold && strings.EqualFold(reg, word)) {
			return reg, true
		}
	}
	return
}

// IsSubLabel returns true if the label name is scoped to a parent label.
func (syntax *Syntax) IsSubLabel(name string) bool {
	return len(syntax.SubLabel) != 0 && strings.HasPrefix(name, syntax.SubLabel) && len(name) > len(syntax.SubLabel)
}

// Context is the per-compile token state. Synthesized tokens draw their
// negative ids from it.
type Context struct {
	synthetic int
	expansion int
}

// NextSynthetic returns the next unused negative token id.
func (ctx *Context) NextSynthetic() int {
	ctx.synthetic--
	return ctx.synthetic
}

// NextExpansion returns a new macro expansion serial number, starting at 1.
func (ctx *Context) NextExpansion() int {
	ctx.expansion++
	return ctx.expansion
}
