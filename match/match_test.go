package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm8/token"
)

var testSyntax = &token.Syntax{
	HexPrefix: []string{"$"},
	Registers: []string{"A", "X", "Y"},
	CaseFold:  true,
}

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

var space = tok(token.KIND_WHITESPACE, " ")

func TestSpaced(t *testing.T) {
	assert := assert.New(t)

	p := Spaced(Lit("("), Const{Syntax: testSyntax, Size: 1}, Lit(","), Register{Syntax: testSyntax, Names: []string{"X"}}, Lit(")"))

	input := []token.Token{
		tok(token.KIND_SYMBOL, "("), space, tok(token.KIND_HEX, "$10"), tok(token.KIND_SYMBOL, ","),
		space, tok(token.KIND_REGISTER, "x"), tok(token.KIND_SYMBOL, ")"), space,
	}

	result, ok := p.MatchExact(input)
	assert.True(ok)
	assert.Len(result.Tokens, 5)
	assert.Equal("$10", result.Tokens[1].Text)

	result, ok = p.MatchStart(input)
	assert.True(ok)
	assert.Equal(7, result.Length)

	// Too wide for one byte.
	input[2] = tok(token.KIND_HEX, "$0010")
	_, ok = p.MatchExact(input)
	assert.False(ok)
}

func TestTight(t *testing.T) {
	assert := assert.New(t)

	p := Tight(Word, Lit(":"))

	_, ok := p.MatchStart([]token.Token{tok(token.KIND_WORD, "loop"), tok(token.KIND_SYMBOL, ":")})
	assert.True(ok)

	_, ok = p.MatchStart([]token.Token{tok(token.KIND_WORD, "loop"), space, tok(token.KIND_SYMBOL, ":")})
	assert.False(ok)
}

func TestMatchExactTrailing(t *testing.T) {
	assert := assert.New(t)

	p := Spaced(FoldLit(".equ"))
	_, ok := p.MatchExact([]token.Token{tok(token.KIND_WORD, ".EQU"), space})
	assert.True(ok)

	_, ok = p.MatchExact([]token.Token{tok(token.KIND_WORD, ".equ"), tok(token.KIND_WORD, "x")})
	assert.False(ok)

	_, ok = Spaced().MatchExact(nil)
	assert.True(ok)
	_, ok = Spaced().MatchExact([]token.Token{space})
	assert.True(ok)
}

func TestMatchAnywhere(t *testing.T) {
	assert := assert.New(t)

	p := Spaced(Lit("#"), Constant)
	input := []token.Token{tok(token.KIND_WORD, "LDA"), space, tok(token.KIND_SYMBOL, "#"), tok(token.KIND_UDEC, "1")}

	result, ok := p.MatchAnywhere(input)
	assert.True(ok)
	assert.Equal(2, result.Start)
	assert.Equal(4, result.End())

	_, ok = p.MatchAnywhere(input[:3])
	assert.False(ok)
}

func TestMatchAll(t *testing.T) {
	assert := assert.New(t)

	input := []token.Token{
		tok(token.KIND_WORD, "a"), tok(token.KIND_SYMBOL, ","), tok(token.KIND_WORD, "b"),
		tok(token.KIND_SYMBOL, ","), tok(token.KIND_UDEC, "3"),
	}

	results := Tight(Word).MatchAll(input)
	assert.Len(results, 2)
	assert.Equal(0, results[0].Start)
	assert.Equal(2, results[1].Start)
}

func TestComponents(t *testing.T) {
	assert := assert.New(t)

	unsigned := Const{Syntax: testSyntax, Size: 1, Unsigned: true}
	assert.True(unsigned.Accept(tok(token.KIND_UDEC, "255")))
	assert.False(unsigned.Accept(tok(token.KIND_DEC, "-1")))
	assert.False(unsigned.Accept(tok(token.KIND_WORD, "w")))

	signed := Const{Syntax: testSyntax, Size: 1}
	assert.True(signed.Accept(tok(token.KIND_DEC, "-1")))

	either := ConstOrRegister{Const: signed, Register: Register{Syntax: testSyntax, Names: []string{"A"}}}
	assert.True(either.Accept(tok(token.KIND_REGISTER, "a")))
	assert.False(either.Accept(tok(token.KIND_REGISTER, "X")))
	assert.True(either.Accept(tok(token.KIND_HEX, "$7F")))

	address := ConstOrWord{Const: Const{Syntax: testSyntax, Size: 2}}
	assert.True(address.Accept(tok(token.KIND_WORD, "start")))
	assert.False(address.Accept(tok(token.KIND_REGISTER, "X")))

	assert.True(Any(token.KIND_STRING, token.KIND_CHAR).Accept(tok(token.KIND_CHAR, "'a'")))
	assert.True(Constant.Accept(tok(token.KIND_BIN, "0b1")))

	// Zero-value syntax falls back to the default prefixes.
	plain := Const{Size: 1}
	assert.True(plain.Accept(tok(token.KIND_HEX, "0x12")))
	assert.False(plain.Accept(tok(token.KIND_HEX, "0x0012")))
	assert.True(plain.Accept(tok(token.KIND_BIN, "0b101")))
}
