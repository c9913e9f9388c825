// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/asm8/isa"
)

// Register is a register and its current value.
type Register struct {
	isa.RegisterDef
	Value uint64
}

// Mask of the register width.
func (reg *Register) Mask() uint64 {
	if reg.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << reg.Width) - 1
}

// Set the register, truncating to its width.
func (reg *Register) Set(value uint64) {
	reg.Value = value & reg.Mask()
}

// Is returns true if the name is the register name or an alias.
func (reg *Register) Is(name string) bool {
	if strings.EqualFold(reg.Name, name) {
		return true
	}
	return slices.ContainsFunc(reg.Aliases, func(alias string) bool {
		return strings.EqualFold(alias, name)
	})
}

// bit returns the bit index of a flag.
func (reg *Register) bit(flag string) (bit int, ok bool) {
	for n, name := range reg.Flags {
		if len(name) != 0 && strings.EqualFold(name, flag) {
			return n, true
		}
	}
	return
}

// Flag reads a named flag bit.
func (reg *Register) Flag(flag string) (set bool, err error) {
	bit, ok := reg.bit(flag)
	if !ok {
		err = ErrFlagMissing(flag)
		return
	}
	set = (reg.Value>>bit)&1 == 1
	return
}

// SetFlag writes a named flag bit.
func (reg *Register) SetFlag(flag string, set bool) (err error) {
	bit, ok := reg.bit(flag)
	if !ok {
		err = ErrFlagMissing(flag)
		return
	}
	if set {
		reg.Value |= 1 << bit
	} else {
		reg.Value &^= 1 << bit
	}
	return
}

// RegisterFile is a set of registers.
type RegisterFile struct {
	regs []*Register
}

// NewRegisterFile makes a zeroed register file.
func NewRegisterFile(defs []isa.RegisterDef) (rf *RegisterFile) {
	rf = &RegisterFile{}
	for _, def := range defs {
		rf.regs = append(rf.regs, &Register{RegisterDef: def})
	}
	return
}

// Get a register by name or alias.
func (rf *RegisterFile) Get(name string) (reg *Register, ok bool) {
	for _, reg = range rf.regs {
		if reg.Is(name) {
			return reg, true
		}
	}
	return nil, false
}

// Status returns the first register with named flags.
func (rf *RegisterFile) Status() (reg *Register, ok bool) {
	for _, reg = range rf.regs {
		if len(reg.Flags) != 0 {
			return reg, true
		}
	}
	return nil, false
}

// All iterates over the registers in definition order.
func (rf *RegisterFile) All() iter.Seq[*Register] {
	return slices.Values(rf.regs)
}

// Clear zeros every register.
func (rf *RegisterFile) Clear() {
	for _, reg := range rf.regs {
		reg.Value = 0
	}
}
