// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package isa describes an instruction set architecture: its addressing
// modes, its mnemonic x mode -> opcode table, its data directives, its
// register file and its memory layout.
//
// The table is the single source of truth shared by the assembler, the
// disassembler and the execution engine, so anything one of them can
// encode the others can decode.
package isa

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

// Mode is an addressing mode.
type Mode struct {
	Name     string           // Short name, ie "imm".
	Patterns []*match.Pattern // Accepted operand syntaxes.
	Operand  int              // Pattern component holding the operand; -1 for none.
	Length   int              // Encoded instruction length, opcode included.
	Relative bool             // Operand is a signed displacement from the next instruction.
	Format   string           // Operand rendering, ie "#$%02X".
}

// OperandSize is the number of operand bytes following the opcode.
func (m *Mode) OperandSize() int {
	return m.Length - 1
}

func (m *Mode) String() string {
	return m.Name
}

// Match matches the operand tokens of an instruction exactly, returning the
// operand token when the mode has one.
func (m *Mode) Match(tokens []token.Token) (operand *token.Token, ok bool) {
	for _, pattern := range m.Patterns {
		result, matched := pattern.MatchExact(tokens)
		if !matched {
			continue
		}
		ok = true
		if m.Operand >= 0 && m.Operand < len(result.Tokens) {
			tok := result.Tokens[m.Operand]
			operand = &tok
		}
		return
	}
	return
}

// Render formats an operand value. For relative modes, value is the encoded
// displacement and next the address following the instruction; the rendered
// text is the branch target, masked to the address width.
func (m *Mode) Render(value uint64, next uint64, mask uint64) string {
	if m.Operand < 0 || !strings.Contains(m.Format, "%") {
		return m.Format
	}
	if m.Relative {
		value = (next + uint64(SignExtend(value, m.OperandSize()))) & mask
	}
	return fmt.Sprintf(m.Format, value)
}

// SignExtend interprets the low size bytes of value as two's complement.
func SignExtend(value uint64, size int) int64 {
	if size <= 0 || size >= 8 {
		return int64(value)
	}
	shift := 64 - 8*size
	return int64(value<<shift) >> shift
}

// Entry is one row of the instruction table.
type Entry struct {
	Mnemonic string
	Mode     *Mode
	Opcode   byte
}

// Length is the encoded length of the instruction.
func (e Entry) Length() int {
	return e.Mode.Length
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %02X", e.Mnemonic, e.Mode.Name, e.Opcode)
}

// Mnemonic maps the modes an instruction supports to their opcodes.
type Mnemonic struct {
	Name    string
	Opcodes map[*Mode]byte
}

// DataDirective is a data emission directive.
type DataDirective struct {
	Name    string // Directive, ie ".word".
	Size    int    // Element size in bytes.
	Aligned bool   // Elements are placed at a multiple of Size.
}

// RegisterDef defines one register of the register file.
type RegisterDef struct {
	Name    string
	Aliases []string
	Width   int      // Width in bits.
	Flags   []string // Flag names by bit; empty names are unused bits.
}

// Architecture is the complete definition of a target.
type Architecture struct {
	Name         string
	Syntax       *token.Syntax
	Modes        []*Mode // Recognition priority order.
	Table        *Table
	Data         []DataDirective
	Registers    []RegisterDef
	PC           string           // Program counter register name.
	AddressWidth int              // Address width in bits.
	ByteOrder    binary.ByteOrder // Multi-byte value order.
	Origin       uint64           // Default origin.
	SymbolicData bool             // Data directives accept words that are not labels.

	Equates map[string]uint64 // Named constants offered to hosted programs.
}

// AddressMask masks an address to the address width.
func (arch *Architecture) AddressMask() uint64 {
	if arch.AddressWidth >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << arch.AddressWidth) - 1
}

// Encode renders the low size bytes of value in the architecture byte order.
func (arch *Architecture) Encode(value uint64, size int) (data []byte) {
	data = make([]byte, size)
	for n := range size {
		shift := 8 * n
		if arch.ByteOrder == binary.BigEndian {
			shift = 8 * (size - 1 - n)
		}
		data[n] = byte(value >> shift)
	}
	return
}

// Decode is the inverse of Encode.
func (arch *Architecture) Decode(data []byte) (value uint64) {
	size := len(data)
	for n, b := range data {
		shift := 8 * n
		if arch.ByteOrder == binary.BigEndian {
			shift = 8 * (size - 1 - n)
		}
		value |= uint64(b) << shift
	}
	return
}

// Directive looks up a data directive by name.
func (arch *Architecture) Directive(name string) (dir *DataDirective, ok bool) {
	for n := range arch.Data {
		if strings.EqualFold(arch.Data[n].Name, name) {
			return &arch.Data[n], true
		}
	}
	return
}

// Register looks up a register definition by name or alias.
func (arch *Architecture) Register(name string) (def *RegisterDef, ok bool) {
	for n := range arch.Registers {
		reg := &arch.Registers[n]
		if strings.EqualFold(reg.Name, name) {
			return reg, true
		}
		for _, alias := range reg.Aliases {
			if strings.EqualFold(alias, name) {
				return reg, true
			}
		}
	}
	return
}

// Recognize finds the first addressing mode, in priority order, whose
// pattern matches the operand tokens and for which the mnemonic has an
// opcode.
func (arch *Architecture) Recognize(mnemonic string, operand []token.Token) (entry Entry, tok *token.Token, err error) {
	name := strings.ToUpper(mnemonic)
	if !arch.Table.Known(name) {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	for _, mode := range arch.Modes {
		var ok bool
		tok, ok = mode.Match(operand)
		if !ok {
			continue
		}
		entry, ok = arch.Table.Lookup(name, mode)
		if ok {
			return
		}
	}

	tok = nil
	err = &ErrModeInvalid{Mnemonic: name, Operand: token.Join(token.Trim(operand))}
	return
}
