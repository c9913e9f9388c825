// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package mos6502

import (
	"github.com/ezrec/asm8/cpu"
	"github.com/ezrec/asm8/isa"
)

// machine is the state a routine works on.
type machine struct {
	cpu   *cpu.Cpu
	entry isa.Entry
	op    cpu.Operand
	pc    uint64

	a, x, y, sp, p *cpu.Register

	next   uint64
	jumped bool
}

func newMachine(c *cpu.Cpu, entry isa.Entry, op cpu.Operand, pc uint64) (m *machine, err error) {
	m = &machine{cpu: c, entry: entry, op: op, pc: pc}
	for name, reg := range map[string]**cpu.Register{
		REG_A: &m.a, REG_X: &m.x, REG_Y: &m.y, REG_SP: &m.sp, REG_P: &m.p,
	} {
		*reg, err = c.Register(name)
		if err != nil {
			return
		}
	}
	return
}

func (m *machine) flag(name string) bool {
	set, _ := m.p.Flag(name)
	return set
}

func (m *machine) set(name string, value bool) {
	_ = m.p.SetFlag(name, value)
}

// zn sets Z and N from an 8-bit result.
func (m *machine) zn(value uint64) {
	m.set(FLAG_Z, value&0xFF == 0)
	m.set(FLAG_N, value&0x80 != 0)
}

func (m *machine) load() (uint64, error) {
	return m.op.Load()
}

// store writes a result to the effective address.
func (m *machine) store(value uint64) (err error) {
	addr, err := m.op.Target()
	if err != nil {
		return
	}
	m.cpu.Mem.Write(addr, byte(value))
	return
}

// modify writes a read-modify-write result to A or memory.
func (m *machine) modify(value uint64) error {
	if m.entry.Mode == ACC {
		m.a.Set(value)
		return nil
	}
	return m.store(value)
}

func (m *machine) jump(addr uint64) {
	m.next = addr & 0xFFFF
	m.jumped = true
}

func (m *machine) branch(taken bool) (err error) {
	if !taken {
		m.jump(m.pc + uint64(m.entry.Length()))
		return
	}
	target, err := m.op.Target()
	if err != nil {
		return
	}
	m.jump(target)
	return
}

func (m *machine) push(value uint64) error {
	return Stack.Push(m.cpu, byte(value))
}

func (m *machine) pull() (value uint64, err error) {
	b, err := Stack.Pull(m.cpu)
	value = uint64(b)
	return
}

// add is the binary ADC core, shared with SBC.
func (m *machine) add(value uint64) {
	a := m.a.Value
	sum := a + value
	if m.flag(FLAG_C) {
		sum++
	}
	m.set(FLAG_C, sum > 0xFF)
	m.set(FLAG_V, (^(a^value))&(a^sum)&0x80 != 0)
	m.a.Set(sum)
	m.zn(m.a.Value)
}

func (m *machine) compare(reg *cpu.Register) (err error) {
	value, err := m.load()
	if err != nil {
		return
	}
	m.set(FLAG_C, reg.Value >= value)
	m.zn(reg.Value - value)
	return
}

func (m *machine) logic(op func(a, v uint64) uint64) (err error) {
	value, err := m.load()
	if err != nil {
		return
	}
	m.a.Set(op(m.a.Value, value))
	m.zn(m.a.Value)
	return
}

func (m *machine) shift(op func(v uint64, carry bool) (result uint64, out bool)) (err error) {
	value, err := m.load()
	if err != nil {
		return
	}
	result, carry := op(value, m.flag(FLAG_C))
	m.set(FLAG_C, carry)
	m.zn(result)
	return m.modify(result & 0xFF)
}

func (m *machine) step(delta uint64) (err error) {
	value, err := m.load()
	if err != nil {
		return
	}
	result := (value + delta) & 0xFF
	m.zn(result)
	return m.store(result)
}

func (m *machine) loadInto(reg *cpu.Register) (err error) {
	value, err := m.load()
	if err != nil {
		return
	}
	reg.Set(value)
	m.zn(reg.Value)
	return
}

func (m *machine) transfer(from, to *cpu.Register, flags bool) error {
	to.Set(from.Value)
	if flags {
		m.zn(to.Value)
	}
	return nil
}

func (m *machine) incr(reg *cpu.Register, delta uint64) error {
	reg.Set(reg.Value + delta)
	m.zn(reg.Value)
	return nil
}

// pullStatus restores P; B and the unused bit do not exist in the register.
func (m *machine) pullStatus() (err error) {
	value, err := m.pull()
	if err != nil {
		return
	}
	m.p.Set((value &^ bitB) | bitUnused)
	return
}

type routine func(m *machine) error

var routines = map[string]routine{
	"ADC": func(m *machine) (err error) {
		value, err := m.load()
		if err != nil {
			return
		}
		m.add(value)
		return
	},
	"SBC": func(m *machine) (err error) {
		value, err := m.load()
		if err != nil {
			return
		}
		m.add(value ^ 0xFF)
		return
	},
	"AND": func(m *machine) error { return m.logic(func(a, v uint64) uint64 { return a & v }) },
	"ORA": func(m *machine) error { return m.logic(func(a, v uint64) uint64 { return a | v }) },
	"EOR": func(m *machine) error { return m.logic(func(a, v uint64) uint64 { return a ^ v }) },
	"ASL": func(m *machine) error {
		return m.shift(func(v uint64, _ bool) (uint64, bool) { return (v << 1) & 0xFF, v&0x80 != 0 })
	},
	"LSR": func(m *machine) error {
		return m.shift(func(v uint64, _ bool) (uint64, bool) { return v >> 1, v&0x01 != 0 })
	},
	"ROL": func(m *machine) error {
		return m.shift(func(v uint64, c bool) (uint64, bool) {
			r := (v << 1) & 0xFF
			if c {
				r |= 0x01
			}
			return r, v&0x80 != 0
		})
	},
	"ROR": func(m *machine) error {
		return m.shift(func(v uint64, c bool) (uint64, bool) {
			r := v >> 1
			if c {
				r |= 0x80
			}
			return r, v&0x01 != 0
		})
	},
	"BIT": func(m *machine) (err error) {
		value, err := m.load()
		if err != nil {
			return
		}
		m.set(FLAG_Z, m.a.Value&value == 0)
		m.set(FLAG_N, value&0x80 != 0)
		m.set(FLAG_V, value&0x40 != 0)
		return
	},
	"BCC": func(m *machine) error { return m.branch(!m.flag(FLAG_C)) },
	"BCS": func(m *machine) error { return m.branch(m.flag(FLAG_C)) },
	"BNE": func(m *machine) error { return m.branch(!m.flag(FLAG_Z)) },
	"BEQ": func(m *machine) error { return m.branch(m.flag(FLAG_Z)) },
	"BPL": func(m *machine) error { return m.branch(!m.flag(FLAG_N)) },
	"BMI": func(m *machine) error { return m.branch(m.flag(FLAG_N)) },
	"BVC": func(m *machine) error { return m.branch(!m.flag(FLAG_V)) },
	"BVS": func(m *machine) error { return m.branch(m.flag(FLAG_V)) },
	"BRK": func(m *machine) (err error) {
		err = Stack.PushWord(m.cpu, m.pc+2, 2)
		if err != nil {
			return
		}
		err = m.push(m.p.Value | bitB | bitUnused)
		if err != nil {
			return
		}
		m.set(FLAG_I, true)
		m.jump(m.cpu.Mem.ReadWord(VECTOR_IRQ, 2))
		return
	},
	"CLC": func(m *machine) error { m.set(FLAG_C, false); return nil },
	"CLD": func(m *machine) error { m.set(FLAG_D, false); return nil },
	"CLI": func(m *machine) error { m.set(FLAG_I, false); return nil },
	"CLV": func(m *machine) error { m.set(FLAG_V, false); return nil },
	"SEC": func(m *machine) error { m.set(FLAG_C, true); return nil },
	"SED": func(m *machine) error { m.set(FLAG_D, true); return nil },
	"SEI": func(m *machine) error { m.set(FLAG_I, true); return nil },
	"CMP": func(m *machine) error { return m.compare(m.a) },
	"CPX": func(m *machine) error { return m.compare(m.x) },
	"CPY": func(m *machine) error { return m.compare(m.y) },
	"DEC": func(m *machine) error { return m.step(0xFF) },
	"INC": func(m *machine) error { return m.step(1) },
	"DEX": func(m *machine) error { return m.incr(m.x, 0xFF) },
	"DEY": func(m *machine) error { return m.incr(m.y, 0xFF) },
	"INX": func(m *machine) error { return m.incr(m.x, 1) },
	"INY": func(m *machine) error { return m.incr(m.y, 1) },
	"JMP": func(m *machine) (err error) {
		target, err := m.op.Target()
		if err != nil {
			return
		}
		m.jump(target)
		return
	},
	"JSR": func(m *machine) (err error) {
		target, err := m.op.Target()
		if err != nil {
			return
		}
		err = Stack.PushWord(m.cpu, m.pc+2, 2)
		if err != nil {
			return
		}
		m.jump(target)
		return
	},
	"RTS": func(m *machine) (err error) {
		ret, err := Stack.PullWord(m.cpu, 2)
		if err != nil {
			return
		}
		m.jump(ret + 1)
		return
	},
	"RTI": func(m *machine) (err error) {
		err = m.pullStatus()
		if err != nil {
			return
		}
		ret, err := Stack.PullWord(m.cpu, 2)
		if err != nil {
			return
		}
		m.jump(ret)
		return
	},
	"LDA": func(m *machine) error { return m.loadInto(m.a) },
	"LDX": func(m *machine) error { return m.loadInto(m.x) },
	"LDY": func(m *machine) error { return m.loadInto(m.y) },
	"STA": func(m *machine) error { return m.store(m.a.Value) },
	"STX": func(m *machine) error { return m.store(m.x.Value) },
	"STY": func(m *machine) error { return m.store(m.y.Value) },
	"NOP": func(m *machine) error { return nil },
	"PHA": func(m *machine) error { return m.push(m.a.Value) },
	"PHP": func(m *machine) error { return m.push(m.p.Value | bitB | bitUnused) },
	"PLA": func(m *machine) (err error) {
		value, err := m.pull()
		if err != nil {
			return
		}
		m.a.Set(value)
		m.zn(m.a.Value)
		return
	},
	"PLP": func(m *machine) error { return m.pullStatus() },
	"TAX": func(m *machine) error { return m.transfer(m.a, m.x, true) },
	"TAY": func(m *machine) error { return m.transfer(m.a, m.y, true) },
	"TSX": func(m *machine) error { return m.transfer(m.sp, m.x, true) },
	"TXA": func(m *machine) error { return m.transfer(m.x, m.a, true) },
	"TXS": func(m *machine) error { return m.transfer(m.x, m.sp, false) },
	"TYA": func(m *machine) error { return m.transfer(m.y, m.a, true) },
}
