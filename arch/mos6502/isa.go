// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mos6502 defines the MOS 6502 for the assembler, disassembler and
// execution engine: its syntax, its addressing modes, its opcode table and
// the semantic routine of every mnemonic.
package mos6502

import (
	"encoding/binary"

	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

// Syntax of 6502 source text.
var Syntax = token.Syntax{
	HexPrefix:    []string{"$", "0x"},
	BinPrefix:    []string{"%", "0b"},
	Comment:      ";",
	SubLabel:     ".",
	Registers:    []string{"A", "X", "Y"},
	CaseFold:     true,
	MultiSymbols: []string{"<<", ">>"},
}

var (
	zpByte  = match.Const{Syntax: &Syntax, Size: 1, Unsigned: true}
	immByte = match.Const{Syntax: &Syntax, Size: 1}
	address = match.ConstOrWord{Const: match.Const{Syntax: &Syntax, Size: 2, Unsigned: true}}
	regA    = match.Register{Syntax: &Syntax, Names: []string{"A"}}
	regX    = match.Register{Syntax: &Syntax, Names: []string{"X"}}
	regY    = match.Register{Syntax: &Syntax, Names: []string{"Y"}}

	lparen = match.Lit("(")
	rparen = match.Lit(")")
	comma  = match.Lit(",")
	hash   = match.Lit("#")
)

// Addressing modes.
var (
	IMP = &isa.Mode{Name: "imp", Operand: -1, Length: 1,
		Patterns: []*match.Pattern{match.Spaced()}}
	ACC = &isa.Mode{Name: "acc", Operand: -1, Length: 1, Format: "A",
		Patterns: []*match.Pattern{match.Spaced(regA), match.Spaced()}}
	IMM = &isa.Mode{Name: "imm", Operand: 1, Length: 2, Format: "#$%02X",
		Patterns: []*match.Pattern{match.Spaced(hash, immByte)}}
	IDX = &isa.Mode{Name: "idx", Operand: 1, Length: 2, Format: "($%02X,X)",
		Patterns: []*match.Pattern{match.Spaced(lparen, zpByte, comma, regX, rparen)}}
	IDY = &isa.Mode{Name: "idy", Operand: 1, Length: 2, Format: "($%02X),Y",
		Patterns: []*match.Pattern{match.Spaced(lparen, zpByte, rparen, comma, regY)}}
	IND = &isa.Mode{Name: "ind", Operand: 1, Length: 3, Format: "($%04X)",
		Patterns: []*match.Pattern{match.Spaced(lparen, address, rparen)}}
	ZPX = &isa.Mode{Name: "zpx", Operand: 0, Length: 2, Format: "$%02X,X",
		Patterns: []*match.Pattern{match.Spaced(zpByte, comma, regX)}}
	ZPY = &isa.Mode{Name: "zpy", Operand: 0, Length: 2, Format: "$%02X,Y",
		Patterns: []*match.Pattern{match.Spaced(zpByte, comma, regY)}}
	ZPG = &isa.Mode{Name: "zpg", Operand: 0, Length: 2, Format: "$%02X",
		Patterns: []*match.Pattern{match.Spaced(zpByte)}}
	ABX = &isa.Mode{Name: "abx", Operand: 0, Length: 3, Format: "$%04X,X",
		Patterns: []*match.Pattern{match.Spaced(address, comma, regX)}}
	ABY = &isa.Mode{Name: "aby", Operand: 0, Length: 3, Format: "$%04X,Y",
		Patterns: []*match.Pattern{match.Spaced(address, comma, regY)}}
	ABS = &isa.Mode{Name: "abs", Operand: 0, Length: 3, Format: "$%04X",
		Patterns: []*match.Pattern{match.Spaced(address)}}
	REL = &isa.Mode{Name: "rel", Operand: 0, Length: 2, Format: "$%04X", Relative: true,
		Patterns: []*match.Pattern{match.Spaced(address)}}
)

// Modes in recognition priority order: the specific indexed and indirect
// forms before the plain zero page and absolute forms.
var Modes = []*isa.Mode{IMP, ACC, IMM, IDX, IDY, IND, ZPX, ZPY, ZPG, ABX, ABY, ABS, REL}

type ops = map[*isa.Mode]byte

// Mnemonics is the documented NMOS 6502 instruction set.
var Mnemonics = []isa.Mnemonic{
	{Name: "ADC", Opcodes: ops{IMM: 0x69, ZPG: 0x65, ZPX: 0x75, ABS: 0x6D, ABX: 0x7D, ABY: 0x79, IDX: 0x61, IDY: 0x71}},
	{Name: "AND", Opcodes: ops{IMM: 0x29, ZPG: 0x25, ZPX: 0x35, ABS: 0x2D, ABX: 0x3D, ABY: 0x39, IDX: 0x21, IDY: 0x31}},
	{Name: "ASL", Opcodes: ops{ACC: 0x0A, ZPG: 0x06, ZPX: 0x16, ABS: 0x0E, ABX: 0x1E}},
	{Name: "BCC", Opcodes: ops{REL: 0x90}},
	{Name: "BCS", Opcodes: ops{REL: 0xB0}},
	{Name: "BEQ", Opcodes: ops{REL: 0xF0}},
	{Name: "BIT", Opcodes: ops{ZPG: 0x24, ABS: 0x2C}},
	{Name: "BMI", Opcodes: ops{REL: 0x30}},
	{Name: "BNE", Opcodes: ops{REL: 0xD0}},
	{Name: "BPL", Opcodes: ops{REL: 0x10}},
	{Name: "BRK", Opcodes: ops{IMP: 0x00}},
	{Name: "BVC", Opcodes: ops{REL: 0x50}},
	{Name: "BVS", Opcodes: ops{REL: 0x70}},
	{Name: "CLC", Opcodes: ops{IMP: 0x18}},
	{Name: "CLD", Opcodes: ops{IMP: 0xD8}},
	{Name: "CLI", Opcodes: ops{IMP: 0x58}},
	{Name: "CLV", Opcodes: ops{IMP: 0xB8}},
	{Name: "CMP", Opcodes: ops{IMM: 0xC9, ZPG: 0xC5, ZPX: 0xD5, ABS: 0xCD, ABX: 0xDD, ABY: 0xD9, IDX: 0xC1, IDY: 0xD1}},
	{Name: "CPX", Opcodes: ops{IMM: 0xE0, ZPG: 0xE4, ABS: 0xEC}},
	{Name: "CPY", Opcodes: ops{IMM: 0xC0, ZPG: 0xC4, ABS: 0xCC}},
	{Name: "DEC", Opcodes: ops{ZPG: 0xC6, ZPX: 0xD6, ABS: 0xCE, ABX: 0xDE}},
	{Name: "DEX", Opcodes: ops{IMP: 0xCA}},
	{Name: "DEY", Opcodes: ops{IMP: 0x88}},
	{Name: "EOR", Opcodes: ops{IMM: 0x49, ZPG: 0x45, ZPX: 0x55, ABS: 0x4D, ABX: 0x5D, ABY: 0x59, IDX: 0x41, IDY: 0x51}},
	{Name: "INC", Opcodes: ops{ZPG: 0xE6, ZPX: 0xF6, ABS: 0xEE, ABX: 0xFE}},
	{Name: "INX", Opcodes: ops{IMP: 0xE8}},
	{Name: "INY", Opcodes: ops{IMP: 0xC8}},
	{Name: "JMP", Opcodes: ops{ABS: 0x4C, IND: 0x6C}},
	{Name: "JSR", Opcodes: ops{ABS: 0x20}},
	{Name: "LDA", Opcodes: ops{IMM: 0xA9, ZPG: 0xA5, ZPX: 0xB5, ABS: 0xAD, ABX: 0xBD, ABY: 0xB9, IDX: 0xA1, IDY: 0xB1}},
	{Name: "LDX", Opcodes: ops{IMM: 0xA2, ZPG: 0xA6, ZPY: 0xB6, ABS: 0xAE, ABY: 0xBE}},
	{Name: "LDY", Opcodes: ops{IMM: 0xA0, ZPG: 0xA4, ZPX: 0xB4, ABS: 0xAC, ABX: 0xBC}},
	{Name: "LSR", Opcodes: ops{ACC: 0x4A, ZPG: 0x46, ZPX: 0x56, ABS: 0x4E, ABX: 0x5E}},
	{Name: "NOP", Opcodes: ops{IMP: 0xEA}},
	{Name: "ORA", Opcodes: ops{IMM: 0x09, ZPG: 0x05, ZPX: 0x15, ABS: 0x0D, ABX: 0x1D, ABY: 0x19, IDX: 0x01, IDY: 0x11}},
	{Name: "PHA", Opcodes: ops{IMP: 0x48}},
	{Name: "PHP", Opcodes: ops{IMP: 0x08}},
	{Name: "PLA", Opcodes: ops{IMP: 0x68}},
	{Name: "PLP", Opcodes: ops{IMP: 0x28}},
	{Name: "ROL", Opcodes: ops{ACC: 0x2A, ZPG: 0x26, ZPX: 0x36, ABS: 0x2E, ABX: 0x3E}},
	{Name: "ROR", Opcodes: ops{ACC: 0x6A, ZPG: 0x66, ZPX: 0x76, ABS: 0x6E, ABX: 0x7E}},
	{Name: "RTI", Opcodes: ops{IMP: 0x40}},
	{Name: "RTS", Opcodes: ops{IMP: 0x60}},
	{Name: "SBC", Opcodes: ops{IMM: 0xE9, ZPG: 0xE5, ZPX: 0xF5, ABS: 0xED, ABX: 0xFD, ABY: 0xF9, IDX: 0xE1, IDY: 0xF1}},
	{Name: "SEC", Opcodes: ops{IMP: 0x38}},
	{Name: "SED", Opcodes: ops{IMP: 0xF8}},
	{Name: "SEI", Opcodes: ops{IMP: 0x78}},
	{Name: "STA", Opcodes: ops{ZPG: 0x85, ZPX: 0x95, ABS: 0x8D, ABX: 0x9D, ABY: 0x99, IDX: 0x81, IDY: 0x91}},
	{Name: "STX", Opcodes: ops{ZPG: 0x86, ZPY: 0x96, ABS: 0x8E}},
	{Name: "STY", Opcodes: ops{ZPG: 0x84, ZPX: 0x94, ABS: 0x8C}},
	{Name: "TAX", Opcodes: ops{IMP: 0xAA}},
	{Name: "TAY", Opcodes: ops{IMP: 0xA8}},
	{Name: "TSX", Opcodes: ops{IMP: 0xBA}},
	{Name: "TXA", Opcodes: ops{IMP: 0x8A}},
	{Name: "TXS", Opcodes: ops{IMP: 0x9A}},
	{Name: "TYA", Opcodes: ops{IMP: 0x98}},
}

// Registers of the 6502. P is the status register.
const (
	REG_A  = "A"
	REG_X  = "X"
	REG_Y  = "Y"
	REG_SP = "SP"
	REG_PC = "PC"
	REG_P  = "P"
)

// Status flags, by name.
const (
	FLAG_C = "C" // Carry
	FLAG_Z = "Z" // Zero
	FLAG_I = "I" // Interrupt disable
	FLAG_D = "D" // Decimal
	FLAG_B = "B" // Break
	FLAG_V = "V" // Overflow
	FLAG_N = "N" // Negative
)

// Registers is the 6502 register file.
var Registers = []isa.RegisterDef{
	{Name: REG_A, Aliases: []string{"AC"}, Width: 8},
	{Name: REG_X, Width: 8},
	{Name: REG_Y, Width: 8},
	{Name: REG_SP, Aliases: []string{"S"}, Width: 8},
	{Name: REG_PC, Width: 16},
	{Name: REG_P, Aliases: []string{"SR"}, Width: 8,
		Flags: []string{FLAG_C, FLAG_Z, FLAG_I, FLAG_D, FLAG_B, "", FLAG_V, FLAG_N}},
}

// Data directives. The 6502 has no alignment rules, so .half and .long are
// the only aligned forms.
var Data = []isa.DataDirective{
	{Name: ".byte", Size: 1},
	{Name: ".word", Size: 2},
	{Name: ".dword", Size: 4},
	{Name: ".half", Size: 2, Aligned: true},
	{Name: ".long", Size: 4, Aligned: true},
}

// ORIGIN is the default load address.
const ORIGIN = 0x0200

var arch = &isa.Architecture{
	Name:         "6502",
	Syntax:       &Syntax,
	Modes:        Modes,
	Table:        isa.MustTable(Modes, Mnemonics),
	Data:         Data,
	Registers:    Registers,
	PC:           REG_PC,
	AddressWidth: 16,
	ByteOrder:    binary.LittleEndian,
	Origin:       ORIGIN,
	Equates: map[string]uint64{
		"STACK_BASE":   STACK_BASE,
		"VECTOR_NMI":   VECTOR_NMI,
		"VECTOR_RESET": VECTOR_RESET,
		"VECTOR_IRQ":   VECTOR_IRQ,
	},
}

// Architecture returns the 6502 definition.
func Architecture() *isa.Architecture {
	return arch
}
