// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mos6502

import (
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/isa"
)

const (
	STACK_BASE   = 0x0100 // Page one.
	VECTOR_NMI   = 0xFFFA
	VECTOR_RESET = 0xFFFC
	VECTOR_IRQ   = 0xFFFE // Also BRK.

	bitB      = 0x10
	bitUnused = 0x20
)

// Stack is the page one hardware stack.
var Stack = cpu.Stack{Register: REG_SP, Base: STACK_BASE}

// Behaviour is the 6502 half of the execution engine. Decimal mode is
// stored in D but ADC and SBC are always binary.
type Behaviour struct{}

var _ cpu.Behaviour = Behaviour{}

// Required registers.
func (Behaviour) Required() []string {
	return []string{REG_A, REG_X, REG_Y, REG_SP, REG_PC, REG_P}
}

// Reset sets the stack pointer and status to their power-on values.
func (Behaviour) Reset(c *cpu.Cpu) {
	if sp, ok := c.Regs.Get(REG_SP); ok {
		sp.Set(0xFD)
	}
	if p, ok := c.Regs.Get(REG_P); ok {
		p.Set(bitUnused)
		_ = p.SetFlag(FLAG_I, true)
	}
}

// Resolve computes the operand value and effective address of a mode.
func (Behaviour) Resolve(c *cpu.Cpu, mode *isa.Mode, raw uint64, pc uint64) (op cpu.Operand, err error) {
	op.Raw = raw

	reg := func(name string) uint64 {
		r, _ := c.Regs.Get(name)
		if r == nil {
			return 0
		}
		return r.Value
	}
	pointer := func(zp uint64) uint64 {
		lo := uint64(c.Mem.Read(zp & 0xFF))
		hi := uint64(c.Mem.Read((zp + 1) & 0xFF))
		return hi<<8 | lo
	}
	at := func(addr uint64) {
		op.Address = addr & 0xFFFF
		op.HasAddress = true
		op.Value = uint64(c.Mem.Read(op.Address))
		op.HasValue = true
	}

	switch mode {
	case IMP:
	case ACC:
		op.Value = reg(REG_A)
		op.HasValue = true
	case IMM:
		op.Value = raw & 0xFF
		op.HasValue = true
	case ZPG:
		at(raw & 0xFF)
	case ZPX:
		at((raw + reg(REG_X)) & 0xFF)
	case ZPY:
		at((raw + reg(REG_Y)) & 0xFF)
	case ABS:
		at(raw)
	case ABX:
		at(raw + reg(REG_X))
	case ABY:
		at(raw + reg(REG_Y))
	case IND:
		// The pointer high byte does not carry into the next page.
		lo := uint64(c.Mem.Read(raw))
		hi := uint64(c.Mem.Read((raw & 0xFF00) | ((raw + 1) & 0x00FF)))
		op.Address = hi<<8 | lo
		op.HasAddress = true
	case IDX:
		at(pointer(raw + reg(REG_X)))
	case IDY:
		at(pointer(raw) + reg(REG_Y))
	case REL:
		op.Address = (pc + uint64(mode.Length) + uint64(isa.SignExtend(raw, 1))) & 0xFFFF
		op.HasAddress = true
	}

	return
}

// Execute runs the routine of a mnemonic.
func (Behaviour) Execute(c *cpu.Cpu, entry isa.Entry, op cpu.Operand, pc uint64) (next uint64, jumped bool, err error) {
	routine, ok := routines[entry.Mnemonic]
	if !ok {
		err = cpu.ErrRoutineMissing(entry.Mnemonic)
		return
	}

	m, err := newMachine(c, entry, op, pc)
	if err != nil {
		return
	}

	err = routine(m)
	if err != nil {
		return
	}

	next, jumped = m.next, m.jumped
	return
}
