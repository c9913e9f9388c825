package isa

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

var (
	testIMP = &Mode{Name: "imp", Operand: -1, Length: 1,
		Patterns: []*match.Pattern{match.Spaced()}}
	testIMM = &Mode{Name: "imm", Operand: 1, Length: 2, Format: "#$%02X",
		Patterns: []*match.Pattern{match.Spaced(match.Lit("#"), match.Const{Size: 1})}}
	testABS = &Mode{Name: "abs", Operand: 0, Length: 3, Format: "$%04X",
		Patterns: []*match.Pattern{match.Spaced(match.ConstOrWord{Const: match.Const{Size: 2, Unsigned: true}})}}
	testREL = &Mode{Name: "rel", Operand: 0, Length: 2, Format: "$%04X", Relative: true,
		Patterns: []*match.Pattern{match.Spaced(match.ConstOrWord{Const: match.Const{Size: 2, Unsigned: true}})}}

	testModes = []*Mode{testIMP, testIMM, testABS, testREL}

	testArch = &Architecture{
		Name:   "test",
		Syntax: &token.Default,
		Modes:  testModes,
		Table: MustTable(testModes, []Mnemonic{
			{Name: "nop", Opcodes: map[*Mode]byte{testIMP: 0xEA}},
			{Name: "LDA", Opcodes: map[*Mode]byte{testIMM: 0xA9, testABS: 0xAD}},
			{Name: "BNE", Opcodes: map[*Mode]byte{testREL: 0xD0}},
		}),
		Data: []DataDirective{
			{Name: ".byte", Size: 1},
			{Name: ".word", Size: 2, Aligned: true},
		},
		Registers: []RegisterDef{
			{Name: "A", Aliases: []string{"AC"}, Width: 8},
			{Name: "PC", Width: 16},
		},
		PC:           "PC",
		AddressWidth: 16,
		ByteOrder:    binary.LittleEndian,
	}
)

func TestTable(t *testing.T) {
	assert := assert.New(t)

	table := testArch.Table
	assert.Equal(4, table.Len())
	assert.True(table.Known("Nop"))
	assert.False(table.Known("JMP"))

	entry, ok := table.Lookup("lda", testABS)
	assert.True(ok)
	assert.Equal(Entry{Mnemonic: "LDA", Mode: testABS, Opcode: 0xAD}, entry)
	assert.Equal(3, entry.Length())

	_, ok = table.Lookup("LDA", testREL)
	assert.False(ok)

	entry, ok = table.Decode(0xD0)
	assert.True(ok)
	assert.Equal("BNE", entry.Mnemonic)
	assert.Equal(testREL, entry.Mode)

	_, ok = table.Decode(0x00)
	assert.False(ok)

	assert.Equal([]*Mode{testIMM, testABS}, table.Modes("LDA"))

	count := 0
	for range table.Entries() {
		count++
	}
	assert.Equal(table.Len(), count)
}

func TestTableErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTable(testModes, []Mnemonic{
		{Name: "NOP", Opcodes: map[*Mode]byte{testIMP: 0xEA}},
		{Name: "nop", Opcodes: map[*Mode]byte{testIMP: 0xEB}},
	})
	assert.Equal(ErrMnemonicDuplicate("NOP"), err)

	_, err = NewTable(testModes, []Mnemonic{
		{Name: "NOP", Opcodes: map[*Mode]byte{testIMP: 0xEA}},
		{Name: "XXX", Opcodes: map[*Mode]byte{testIMP: 0xEA}},
	})
	var dup *ErrOpcodeDuplicate
	if assert.ErrorAs(err, &dup) {
		assert.Equal(byte(0xEA), dup.Opcode)
		assert.Equal("NOP", dup.First.Mnemonic)
		assert.Equal("XXX", dup.Second.Mnemonic)
	}

	stray := &Mode{Name: "zzz", Length: 1}
	_, err = NewTable(testModes, []Mnemonic{
		{Name: "NOP", Opcodes: map[*Mode]byte{stray: 0xEA}},
	})
	assert.Equal(&ErrModeUnknown{Mnemonic: "NOP", Mode: "zzz"}, err)

	assert.Panics(func() {
		MustTable(testModes, []Mnemonic{{Name: "NOP", Opcodes: map[*Mode]byte{stray: 0xEA}}})
	})
}

func TestRender(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", testIMP.Render(0, 0, 0xFFFF))
	assert.Equal("#$05", testIMM.Render(5, 0, 0xFFFF))
	assert.Equal("$1234", testABS.Render(0x1234, 0, 0xFFFF))
	// Relative operands render as the branch target.
	assert.Equal("$0200", testREL.Render(0xFA, 0x0206, 0xFFFF))
	assert.Equal("$0010", testREL.Render(0x10, 0x0000, 0xFFFF))
	assert.Equal("$FFFE", testREL.Render(0xFE, 0x0000, 0xFFFF))
}

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int64(-6), SignExtend(0xFA, 1))
	assert.Equal(int64(0x7F), SignExtend(0x7F, 1))
	assert.Equal(int64(-2), SignExtend(0xFFFE, 2))
	assert.Equal(int64(0x1FA), SignExtend(0x1FA, 0))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte{0x34, 0x12}, testArch.Encode(0x1234, 2))
	assert.Equal(uint64(0x1234), testArch.Decode([]byte{0x34, 0x12}))
	assert.Equal([]byte{0x78}, testArch.Encode(0x12345678, 1))
	assert.Empty(testArch.Encode(0x12, 0))

	big := *testArch
	big.ByteOrder = binary.BigEndian
	assert.Equal([]byte{0x12, 0x34, 0x56, 0x78}, big.Encode(0x12345678, 4))
	assert.Equal(uint64(0x12345678), big.Decode([]byte{0x12, 0x34, 0x56, 0x78}))
}

func TestArchitecture(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint64(0xFFFF), testArch.AddressMask())

	dir, ok := testArch.Directive(".WORD")
	assert.True(ok)
	assert.Equal(2, dir.Size)
	assert.True(dir.Aligned)
	_, ok = testArch.Directive(".long")
	assert.False(ok)

	reg, ok := testArch.Register("ac")
	assert.True(ok)
	assert.Equal("A", reg.Name)
	_, ok = testArch.Register("X")
	assert.False(ok)
}

func operand(text ...token.Token) []token.Token {
	return text
}

func TestRecognize(t *testing.T) {
	assert := assert.New(t)

	hash := token.Token{Kind: token.KIND_SYMBOL, Text: "#"}
	five := token.Token{Kind: token.KIND_HEX, Text: "0x05"}
	addr := token.Token{Kind: token.KIND_HEX, Text: "0x1234"}
	word := token.Token{Kind: token.KIND_WORD, Text: "loop"}
	space := token.Token{Kind: token.KIND_WHITESPACE, Text: " "}

	entry, tok, err := testArch.Recognize("nop", nil)
	assert.NoError(err)
	assert.Equal(testIMP, entry.Mode)
	assert.Nil(tok)

	entry, tok, err = testArch.Recognize("lda", operand(space, hash, five))
	assert.NoError(err)
	assert.Equal(testIMM, entry.Mode)
	assert.Equal("0x05", tok.Text)

	entry, tok, err = testArch.Recognize("LDA", operand(addr))
	assert.NoError(err)
	assert.Equal(testABS, entry.Mode)
	assert.Equal("0x1234", tok.Text)

	// ABS comes first in priority, but BNE only has REL.
	entry, _, err = testArch.Recognize("BNE", operand(word))
	assert.NoError(err)
	assert.Equal(testREL, entry.Mode)

	_, _, err = testArch.Recognize("JMP", operand(addr))
	assert.Equal(ErrMnemonicUnknown("JMP"), err)

	_, tok, err = testArch.Recognize("NOP", operand(addr))
	assert.Equal(&ErrModeInvalid{Mnemonic: "NOP", Operand: "0x1234"}, err)
	assert.Nil(tok)

	_, _, err = testArch.Recognize("LDA", nil)
	assert.Equal(&ErrModeInvalid{Mnemonic: "LDA"}, err)
}
