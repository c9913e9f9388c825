package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSyntax = &Syntax{
	HexPrefix: []string{"$", "0x"},
	BinPrefix: []string{"%", "0b"},
	Comment:   ";",
	SubLabel:  ".",
	Registers: []string{"A", "X", "Y"},
	CaseFold:  true,
}

func TestValue(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		tok   Token
		value int64
		size  int
	}){
		{Token{Kind: KIND_HEX, Text: "$05"}, 5, 1},
		{Token{Kind: KIND_HEX, Text: "$0005"}, 5, 2},
		{Token{Kind: KIND_HEX, Text: "0xFFFF"}, 0xFFFF, 2},
		{Token{Kind: KIND_HEX, Text: "$100"}, 0x100, 2},
		{Token{Kind: KIND_BIN, Text: "%1010"}, 10, 1},
		{Token{Kind: KIND_BIN, Text: "0b0000_0000_1"}, 1, 2},
		{Token{Kind: KIND_UDEC, Text: "255"}, 255, 1},
		{Token{Kind: KIND_UDEC, Text: "256"}, 256, 2},
		{Token{Kind: KIND_DEC, Text: "-128"}, -128, 1},
		{Token{Kind: KIND_DEC, Text: "-129"}, -129, 2},
		{Token{Kind: KIND_DEC, Text: "+7"}, 7, 1},
		{Token{Kind: KIND_CHAR, Text: "'A'"}, 65, 1},
	}

	for _, entry := range table {
		value, err := entry.tok.ValueIn(testSyntax)
		assert.NoError(err, entry.tok.Text)
		assert.Equal(entry.value, value, entry.tok.Text)

		size, err := entry.tok.Size(testSyntax)
		assert.NoError(err, entry.tok.Text)
		assert.Equal(entry.size, size, entry.tok.Text)
	}
}

func TestValueNotConstant(t *testing.T) {
	assert := assert.New(t)

	_, err := Token{Kind: KIND_WORD, Text: "loop"}.Value()
	assert.Equal(ErrNotConstant("loop"), err)

	_, err = Token{Kind: KIND_EXPRESSION, Text: "(1+2)"}.Value()
	assert.Equal(ErrNotConstant("(1+2)"), err)
}

func TestSizeOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, SizeOf(0))
	assert.Equal(1, SizeOf(0xFF))
	assert.Equal(2, SizeOf(0x100))
	assert.Equal(1, SizeOf(-1))
	assert.Equal(1, SizeOf(-128))
	assert.Equal(2, SizeOf(-129))
	assert.Equal(4, SizeOf(0xFFFFFFFF))
	assert.Equal(8, SizeOf(-1<<62))
}

func TestUnquote(t *testing.T) {
	assert := assert.New(t)

	text, err := Token{Kind: KIND_STRING, Text: `"hi\n"`}.Unquote()
	assert.NoError(err)
	assert.Equal("hi\n", text)

	_, err = Token{Kind: KIND_WORD, Text: "hi"}.Unquote()
	assert.Equal(ErrNotString("hi"), err)
}

func TestLine(t *testing.T) {
	assert := assert.New(t)

	tokens := []Token{
		{Kind: KIND_WHITESPACE, Text: " "},
		{Kind: KIND_WORD, Text: "NOP"},
		{Kind: KIND_WHITESPACE, Text: "\t"},
		{Kind: KIND_NEWLINE, Text: "\n"},
		{Kind: KIND_WORD, Text: "RTS"},
	}

	line, rest := Line(tokens)
	assert.Len(line, 3)
	assert.Equal(KIND_NEWLINE, rest[0].Kind)
	assert.Equal("NOP", Join(Trim(line)))

	line, rest = Line(rest[1:])
	assert.Equal("RTS", Join(line))
	assert.Nil(rest)
}

func TestSyntax(t *testing.T) {
	assert := assert.New(t)

	name, ok := testSyntax.Register("x")
	assert.True(ok)
	assert.Equal("X", name)

	_, ok = testSyntax.Register("Q")
	assert.False(ok)

	assert.True(testSyntax.IsSubLabel(".loop"))
	assert.False(testSyntax.IsSubLabel("loop"))
	assert.False(testSyntax.IsSubLabel("."))

	ctx := &Context{}
	assert.Equal(-1, ctx.NextSynthetic())
	assert.Equal(-2, ctx.NextSynthetic())
	assert.Equal(1, ctx.NextExpansion())
	assert.True(Token{Id: -2}.Synthetic())
}

func TestLocation(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("main.s:3:7", Location{File: "main.s", Line: 3, Column: 7}.String())
	assert.Equal("3:7", Location{Line: 3, Column: 7}.String())
}
